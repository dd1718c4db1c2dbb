package main

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRootCmd(t *testing.T) {
	Convey("Given the root command", t, func() {
		root := rootCmd()

		Convey("Then the expected subcommands are registered", func() {
			names := make(map[string]bool)
			for _, c := range root.Commands() {
				names[c.Name()] = true
			}
			So(names["serve"], ShouldBeTrue)
			So(names["board"], ShouldBeTrue)
			So(names["trending"], ShouldBeTrue)
		})

		Convey("And the config flag is available everywhere", func() {
			So(root.PersistentFlags().Lookup("config"), ShouldNotBeNil)
		})

		Convey("And trending carries window and limit flags", func() {
			var trending = trendingCmd()
			So(trending.Flags().Lookup("window"), ShouldNotBeNil)
			So(trending.Flags().Lookup("limit"), ShouldNotBeNil)
		})
	})
}
