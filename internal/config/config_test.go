package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		OutputPath:           "Airtel.xlsx",
		ListenAddr:           ":8080",
		GoogleSheetWorksheet: "Invoices",
		LogLevel:             "info",
		LogFormat:            "console",
		LogOutput:            "stderr",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "defaults",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "upper case extension",
			modify:  func(c *Config) { c.OutputPath = "out/INVOICE.XLSX" },
			wantErr: false,
		},
		{
			name:        "empty output path",
			modify:      func(c *Config) { c.OutputPath = "" },
			wantErr:     true,
			errorString: "INVOICE_OUTPUT_PATH must not be empty",
		},
		{
			name:        "wrong output extension",
			modify:      func(c *Config) { c.OutputPath = "Airtel.csv" },
			wantErr:     true,
			errorString: "INVOICE_OUTPUT_PATH 'Airtel.csv' must end in .xlsx",
		},
		{
			name:        "empty listen address",
			modify:      func(c *Config) { c.ListenAddr = "" },
			wantErr:     true,
			errorString: "LISTEN_ADDR must not be empty",
		},
		{
			name: "sheet url without worksheet",
			modify: func(c *Config) {
				c.GoogleSheetURL = "https://docs.google.com/spreadsheets/d/abc/edit"
				c.GoogleSheetWorksheet = ""
			},
			wantErr:     true,
			errorString: "GOOGLE_SHEET_WORKSHEET is required when GOOGLE_SHEET_URL is set",
		},
		{
			name:        "unknown log level",
			modify:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid LOG_LEVEL 'verbose'",
		},
		{
			name:        "unknown log format",
			modify:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid LOG_FORMAT 'xml': must be one of [console json]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.modify(&c)

			err := c.validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errorString, err.Error())
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("INVOICE_OUTPUT_PATH", "")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("GOOGLE_SHEET_URL", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Airtel.xlsx", cfg.OutputPath)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "Invoices", cfg.GoogleSheetWorksheet)

	logCfg := cfg.GetLoggerConfig()
	assert.Equal(t, "debug", logCfg.Level)
	assert.Equal(t, "json", logCfg.Format)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("INVOICE_OUTPUT_PATH", "invoice.pdf")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
