package config

import (
	"testing"

	"github.com/lyra-cli/lyra/filesystem"
	"github.com/lyra-cli/lyra/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.AudioPeriodMs), ShouldEqual, 20)
			So(viper.GetStringSlice(key.PlaylistIgnoredExtensions), ShouldContain, ".lrc")
		})

		Convey("Every defined key is registered", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("audio.sample_rate"), ShouldEqual, "audio_sample_rate")
		})

		Convey("Env names carry the application prefix", func() {
			f := Default[key.PlayerVolume]
			So(f.Env(), ShouldEqual, "LYRA_PLAYER_VOLUME")
		})
	})
}
