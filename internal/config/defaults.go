package config

import "runtime"

const (
	defaultOutputDir     = "."
	defaultOutputFile    = "processed_features.csv"
	defaultLogDir        = "~/.local/share/foldfeat/logs"
	defaultSentinelBase  = "N"
	defaultStemEndMargin = 0
	defaultOutputFormat  = "csv"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:  defaultOutputDir,
			OutputFile: defaultOutputFile,
			LogDir:     defaultLogDir,
		},
		Extract: Extract{
			SentinelBase:  defaultSentinelBase,
			StemEndMargin: defaultStemEndMargin,
		},
		Output: Output{
			Format: defaultOutputFormat,
		},
		Batch: Batch{
			Workers: defaultWorkers(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultWorkers() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}
