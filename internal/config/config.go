package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/tomz197/lanebattle/internal/match"
)

// EnvPrefix prefixes every environment override, e.g. LANEBATTLE_SSH_PORT.
const EnvPrefix = "LANEBATTLE"

// SSHConfig holds the SSH front-end settings.
type SSHConfig struct {
	Host        string
	Port        string
	HostKeyPath string
}

// WebConfig holds the web landing page and spectator settings.
type WebConfig struct {
	Host           string
	Port           string
	SSHDisplayHost string
}

// Config is the resolved server configuration.
type Config struct {
	SSH      SSHConfig
	Web      WebConfig
	LogLevel string

	rules match.Rules
}

// legacyEnv keeps the plain variable names used by existing deployments.
var legacyEnv = map[string]string{
	"ssh.host":           "SSH_HOST",
	"ssh.port":           "SSH_PORT",
	"ssh.hostKeyPath":    "SSH_HOST_KEY",
	"web.host":           "WEB_HOST",
	"web.port":           "WEB_PORT",
	"web.sshDisplayHost": "SSH_DISPLAY_HOST",
}

func setDefaults() {
	viper.SetDefault("ssh.host", "::")
	viper.SetDefault("ssh.port", "2222")
	viper.SetDefault("ssh.hostKeyPath", "/app/keys/host_key")

	viper.SetDefault("web.host", "0.0.0.0")
	viper.SetDefault("web.port", "8080")
	viper.SetDefault("web.sshDisplayHost", "your-server.com")

	viper.SetDefault("log.level", "info")

	r := match.DefaultRules()
	viper.SetDefault("rules.startingPoints", r.StartingPoints)
	viper.SetDefault("rules.kingHealth", r.KingHealth)
	viper.SetDefault("rules.humanIncome", r.HumanIncome)
	viper.SetDefault("rules.computerIncome", r.ComputerIncome)
	viper.SetDefault("rules.kingRetaliation", r.KingRetaliation)
	viper.SetDefault("rules.attackInterval", r.AttackInterval)
	viper.SetDefault("rules.killBounty", r.KillBounty)
	viper.SetDefault("rules.pieceSpeed", r.PieceSpeed)
	viper.SetDefault("rules.allyGap", r.AllyGap)
	viper.SetDefault("rules.aiInterval", r.AIInterval)
	viper.SetDefault("rules.aiJitter", r.AIJitter)
}

// Load sets defaults, applies environment overrides and, when path is not
// empty, reads that YAML file on top.
func Load(path string) (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := viper.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if path != "" {
		viper.SetConfigFile(path)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		SSH: SSHConfig{
			Host:        viper.GetString("ssh.host"),
			Port:        viper.GetString("ssh.port"),
			HostKeyPath: viper.GetString("ssh.hostKeyPath"),
		},
		Web: WebConfig{
			Host:           viper.GetString("web.host"),
			Port:           viper.GetString("web.port"),
			SSHDisplayHost: viper.GetString("web.sshDisplayHost"),
		},
		LogLevel: viper.GetString("log.level"),
		rules: match.Rules{
			StartingPoints:  viper.GetFloat64("rules.startingPoints"),
			KingHealth:      viper.GetInt("rules.kingHealth"),
			HumanIncome:     viper.GetFloat64("rules.humanIncome"),
			ComputerIncome:  viper.GetFloat64("rules.computerIncome"),
			KingRetaliation: viper.GetInt("rules.kingRetaliation"),
			AttackInterval:  viper.GetFloat64("rules.attackInterval"),
			KillBounty:      viper.GetFloat64("rules.killBounty"),
			PieceSpeed:      viper.GetFloat64("rules.pieceSpeed"),
			AllyGap:         viper.GetFloat64("rules.allyGap"),
			AIInterval:      viper.GetFloat64("rules.aiInterval"),
			AIJitter:        viper.GetFloat64("rules.aiJitter"),
		},
	}
	if err := validateRules(cfg.rules); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	return cfg, nil
}

// Rules returns the match rules to play with.
func (c *Config) Rules() match.Rules {
	return c.rules
}

func validateRules(r match.Rules) error {
	var errs []error
	if r.KingHealth <= 0 {
		errs = append(errs, errors.New("kingHealth must be positive"))
	}
	if r.AttackInterval <= 0 {
		errs = append(errs, errors.New("attackInterval must be positive"))
	}
	if r.AIInterval < 0 || r.AIJitter < 0 {
		errs = append(errs, errors.New("aiInterval and aiJitter must not be negative"))
	}
	if r.PieceSpeed < 0 || r.StartingPoints < 0 {
		errs = append(errs, errors.New("pieceSpeed and startingPoints must not be negative"))
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"humanIncome", r.HumanIncome},
		{"computerIncome", r.ComputerIncome},
		{"killBounty", r.KillBounty},
		{"allyGap", r.AllyGap},
		{"kingRetaliation", float64(r.KingRetaliation)},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", f.name))
		}
	}
	return errors.Join(errs...)
}
