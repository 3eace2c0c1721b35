package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Error reports a configuration resolution failure: an unparseable config
// file, a value that cannot be coerced to its setting's declared type, or a
// validation violation. It is fatal to startup.
type Error struct {
	// Setting is the dotted path of the failing setting, or a short
	// description of the failing source (e.g. the config file) when the
	// failure is not tied to one key.
	Setting string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Setting != "" {
		return fmt.Sprintf("config: %s: %v", e.Setting, e.Cause)
	}
	return fmt.Sprintf("config: %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Options are the inputs to Resolve.
//
// The process environment is read directly; variable names are derived from
// setting paths (uppercase, '.' -> '_'), so database.path is DATABASE_PATH.
type Options struct {
	// File is an explicit config file path (from --config). Empty means the
	// conventional locations: ./weeknotes.yaml, then <config dir>/weeknotes.yaml.
	// A missing file is never an error; a malformed one always is.
	File string

	// Flags is the invoking command's flag set. Only flags the user actually
	// changed participate in resolution; a flag sitting at its pflag default
	// does not shadow environment or file values. Nil skips the flag layer.
	Flags *pflag.FlagSet
}

// Resolve merges the four configuration sources into one immutable snapshot.
//
// Precedence per setting, highest first: explicitly-set CLI flag, environment
// variable, config file value, compiled-in default. Precedence is per key:
// a file that sets only draft.author does not affect how database.path
// resolves. Resolve has no side effects and is idempotent; calling it twice
// with identical inputs yields identical snapshots.
func Resolve(opts Options) (*Config, error) {
	v := viper.New()

	for key, val := range defaults() {
		v.SetDefault(key, val)
	}

	if err := readFile(v, opts.File); err != nil {
		return nil, err
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, name := range flagBindings {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, &Error{Setting: key, Cause: err}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Decode errors already name the failing dotted key.
		return nil, &Error{Cause: err}
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath()
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// readFile loads the config file layer into v.
// Absence is tolerated for both explicit and conventional paths; any parse
// failure is fatal. Unknown keys in the file are ignored.
func readFile(v *viper.Viper, explicit string) error {
	if explicit != "" {
		if _, err := os.Stat(explicit); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return &Error{Setting: "config file " + explicit, Cause: err}
		}
		return nil
	}

	v.SetConfigName("weeknotes")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := Dir(); dir != "" {
		v.AddConfigPath(dir)
	}

	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return &Error{Setting: "config file", Cause: err}
}

// validateConfig checks the resolved snapshot against the struct's validate
// tags and reports the first violation by its dotted setting path.
func validateConfig(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			return field.Name
		}
		return tag
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &Error{
			Setting: settingPath(fe.Namespace()),
			Cause:   fmt.Errorf("failed %q validation (value %v)", fe.Tag(), fe.Value()),
		}
	}
	return &Error{Cause: err}
}

// settingPath converts a validator namespace like "Config.log.level" into
// the dotted setting path "log.level".
func settingPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
