package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"keypoll/core"
)

var v *viper.Viper

func init() {
	v = viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.debug_core", false)
	v.SetDefault("poll.period", core.PollPeriod)
	v.SetDefault("queue.size", 64)
	v.SetDefault("output", "console")
	v.SetDefault("trace", false)
	v.SetDefault("vkbd.device", "/dev/uinput")
	v.SetDefault("vkbd.name", "keypoll")

	v.SetDefault("buttons.driver", "periph")
	v.SetDefault("buttons.input", "/dev/input/event0")
	v.SetDefault("buttons.profile", "")

	v.SetDefault("pad.device", "/dev/ttyUSB0")
	v.SetDefault("pad.baud", 115200)

	// KEYPOLL_PAD_DEVICE etc.
	v.SetEnvPrefix("keypoll")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("keypoll")
	v.SetConfigType("toml")
	for _, path := range []string{".", "$HOME/.config/keypoll", "/etc/keypoll"} {
		v.AddConfigPath(os.ExpandEnv(path))
	}
}

// readConfig loads keypoll.toml if one exists, or the file named by --config
func readConfig(file string) error {
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && file == "" {
			// No config file; flags, env and defaults only
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func newLogger() (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)

	// Core diagnostics go through the same logger
	core.SetDebugWriter(func(msg string) {
		log.WithField("src", "core").Debug(msg)
	})
	core.SetDebugEnabled(v.GetBool("log.debug_core"))
	core.InitAsyncDebug()

	return log, nil
}

func pollPeriod() time.Duration {
	return v.GetDuration("poll.period")
}
