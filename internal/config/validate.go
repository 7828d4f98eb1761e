package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their yaml keys
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that required fields are set and values are valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed %q validation", fieldPath(fe.Namespace()), fe.Tag())
		}
		return err
	}

	if c.Data.Path == "" && c.Data.SQLitePath == "" && c.Data.Postgres.Host == "" {
		return errors.New("one of data.path, data.sqlite_path or data.postgres.host is required")
	}
	if c.Telegram.BotToken != "" && len(c.Schedule.Watchlist) > 0 && c.Telegram.ChatID == "" {
		return errors.New("telegram.chat_id is required when a watchlist is configured")
	}
	return nil
}

// fieldPath strips the root struct name: "Config.log.level" -> "log.level".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
