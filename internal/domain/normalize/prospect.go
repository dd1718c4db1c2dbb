package normalize

import "github.com/hooplens/prospectrank/internal/domain/model"

// Prospect resolves a prospect's raw measurement encodings into canonical
// inch values and backfills a wingspan estimate when the source reports
// none. Fields already carrying a parsed value are never overwritten, and
// a record the normalizer cannot improve passes through unchanged.
func Prospect(p model.Prospect) model.Prospect {
	if p.HeightIn == nil {
		p.HeightIn = ParseMeasurement(p.HeightRaw)
	}
	if p.WingspanIn == nil {
		p.WingspanIn = ParseMeasurement(p.WingspanRaw)
	}
	if p.WingspanIn == nil && p.HeightIn != nil {
		est := EstimateWingspan(*p.HeightIn, p.Position)
		p.WingspanIn = &est
	}
	return p
}
