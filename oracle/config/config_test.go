package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/suite"

	_ "github.com/GPTx-global/guru-dataoracle/app"
)

type ConfigTestSuite struct {
	suite.Suite
	home string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	suite.home = suite.T().TempDir()
}

func (suite *ConfigTestSuite) writeConfig(content string) {
	err := os.WriteFile(filepath.Join(suite.home, ConfigFileName), []byte(content), 0o644)
	suite.Require().NoError(err)
}

func (suite *ConfigTestSuite) TestLoadCreatesDefault() {
	cfg, err := Load(suite.home)
	suite.Require().NoError(err)
	suite.FileExists(filepath.Join(suite.home, ConfigFileName))

	expected := DefaultConfig()
	expected.Home = suite.home
	suite.Equal(expected, *cfg)
	suite.Equal(filepath.Join(suite.home, "data"), cfg.DBDir())
	suite.Equal(filepath.Join(suite.home, GenesisFileName), cfg.GenesisFile())

	// the written defaults load back unchanged
	again, err := Load(suite.home)
	suite.Require().NoError(err)
	suite.Equal(cfg, again)
}

func (suite *ConfigTestSuite) TestLoadFeederJobs() {
	provider := sdk.AccAddress([]byte("provider____________")).String()
	suite.writeConfig(`
[chain]
id = "test-chain"

[store]
backend = "memdb"

[api]
address = "127.0.0.1:0"
shutdown_timeout = "3s"

[feeder]
enabled = true
provider = "` + provider + `"
workers = 2

[[feeder.jobs]]
oracle_id = 1
url = "https://api.example.com/weather"
path = "main.temp"
interval = "30s"

[[feeder.jobs]]
oracle_id = 2
url = "https://api.example.com/price"
path = "data.0.price"
interval = "1m"
`)

	cfg, err := Load(suite.home)
	suite.Require().NoError(err)
	suite.Equal("test-chain", cfg.Chain.ID)
	suite.Equal(BackendMemDB, cfg.Store.Backend)
	suite.Equal(3*time.Second, cfg.API.ShutdownTimeout)
	suite.Equal(DefaultConfig().API.MaxOpenConnections, cfg.API.MaxOpenConnections)

	suite.True(cfg.Feeder.Enabled)
	suite.Equal(provider, cfg.Feeder.Provider)
	suite.Require().Len(cfg.Feeder.Jobs, 2)
	suite.Equal(JobConfig{
		OracleID: 2,
		URL:      "https://api.example.com/price",
		Path:     "data.0.price",
		Interval: time.Minute,
	}, cfg.Feeder.Jobs[1])
}

func (suite *ConfigTestSuite) TestEnvOverrides() {
	suite.T().Setenv("ORACLED_API_ADDRESS", "0.0.0.0:9317")

	err := os.WriteFile(filepath.Join(suite.home, EnvFileName), []byte("ORACLED_CHAIN_ID=dotenv-chain\n"), 0o644)
	suite.Require().NoError(err)
	suite.T().Cleanup(func() { os.Unsetenv("ORACLED_CHAIN_ID") })

	cfg, err := Load(suite.home)
	suite.Require().NoError(err)
	suite.Equal("0.0.0.0:9317", cfg.API.Address)
	suite.Equal("dotenv-chain", cfg.Chain.ID)
}

func (suite *ConfigTestSuite) TestLoadInvalid() {
	suite.writeConfig(`
[log]
format = "xml"
`)
	_, err := Load(suite.home)
	suite.Require().ErrorContains(err, "unknown log format")

	suite.writeConfig(`
[chain]
id =
`)
	_, err = Load(suite.home)
	suite.Require().Error(err)
}

func (suite *ConfigTestSuite) TestValidate() {
	provider := sdk.AccAddress([]byte("provider____________")).String()
	job := JobConfig{OracleID: 1, URL: "https://api.example.com", Path: "value", Interval: time.Minute}

	testCases := []struct {
		name     string
		malleate func(*Config)
		expPass  bool
	}{
		{"default", func(*Config) {}, true},
		{"empty chain id", func(c *Config) { c.Chain.ID = "" }, false},
		{"unknown backend", func(c *Config) { c.Store.Backend = "rocksdb" }, false},
		{"leveldb without dir", func(c *Config) { c.Store.Dir = "" }, false},
		{"memdb without dir", func(c *Config) { c.Store.Backend = BackendMemDB; c.Store.Dir = "" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"empty api address", func(c *Config) { c.API.Address = "" }, false},
		{"telemetry without retention", func(c *Config) { c.Telemetry.Enabled = true; c.Telemetry.RetentionTime = 0 }, false},
		{"zero health interval", func(c *Config) { c.Health.Interval = 0 }, false},
		{"disabled feeder ignores jobs", func(c *Config) { c.Feeder.Jobs = []JobConfig{{}} }, true},
		{"feeder without provider", func(c *Config) { c.Feeder.Enabled = true }, false},
		{
			"feeder with job",
			func(c *Config) {
				c.Feeder.Enabled, c.Feeder.Provider, c.Feeder.Jobs = true, provider, []JobConfig{job}
			},
			true,
		},
		{
			"feeder duplicate job",
			func(c *Config) {
				c.Feeder.Enabled, c.Feeder.Provider, c.Feeder.Jobs = true, provider, []JobConfig{job, job}
			},
			false,
		},
		{
			"feeder job bad url",
			func(c *Config) {
				bad := job
				bad.URL = "ftp://example.com"
				c.Feeder.Enabled, c.Feeder.Provider, c.Feeder.Jobs = true, provider, []JobConfig{bad}
			},
			false,
		},
		{
			"feeder job short interval",
			func(c *Config) {
				bad := job
				bad.Interval = time.Millisecond
				c.Feeder.Enabled, c.Feeder.Provider, c.Feeder.Jobs = true, provider, []JobConfig{bad}
			},
			false,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			cfg := DefaultConfig()
			tc.malleate(&cfg)
			err := cfg.Validate()
			if tc.expPass {
				suite.Require().NoError(err)
			} else {
				suite.Require().Error(err)
			}
		})
	}
}

func (suite *ConfigTestSuite) TestMarshalTOML() {
	cfg := DefaultConfig()
	cfg.Feeder.Jobs = []JobConfig{{OracleID: 1, URL: "https://x.io", Path: "a.b", Interval: 90 * time.Second}}

	data, err := cfg.MarshalTOML()
	suite.Require().NoError(err)
	suite.Regexp(`shutdown_timeout = ['"]10s['"]`, string(data))
	suite.Contains(string(data), "[[feeder.jobs]]")
	suite.Regexp(`interval = ['"]1m30s['"]`, string(data))
}
