package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"scout.dev/pkg/scout/pkg/searchpath"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "scout"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName      = "output"
	rootFlagName        = "root"
	pathFlagName        = "path"
	manifestFlagName    = "manifest"
	interactiveFlagName = "interactive"
	verboseFlagName     = "verbose"
	saveFlagName        = "save"
	reversedFlagName    = "reversed"
	workersFlagName     = "workers"

	envVarFlagName    = "env-var"
	separatorFlagName = "separator"

	rootConfigKey      = "paths.root"
	pathsConfigKey     = "paths.explicit"
	envVarConfigKey    = "paths.env_var"
	separatorConfigKey = "paths.separator"
	workersConfigKey   = "resolve.workers"

	defaultReportsDir = ".scout-reports"
	defaultEnvVar     = "SCOUT_ASSET_PATH"
	defaultWorkers    = 4

	// separatorOSL selects the fixed ':' separator of the OSL shader
	// path convention instead of the platform list separator.
	separatorOSL = "osl"

	envPrefix = "SCOUT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".scout.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(rootConfigKey, "")
	viper.SetDefault(pathsConfigKey, []string{})
	viper.SetDefault(envVarConfigKey, defaultEnvVar)
	viper.SetDefault(separatorConfigKey, "")
	viper.SetDefault(workersConfigKey, defaultWorkers)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}
	}
}

// parseSeparator maps a config value to a separator rune: empty means
// the platform list separator, "osl" the fixed ':' convention, and any
// other value its first rune.
func parseSeparator(value string) rune {
	value = strings.TrimSpace(value)

	switch {
	case value == "":
		return searchpath.ListSeparator()
	case strings.EqualFold(value, separatorOSL):
		return searchpath.OSLPathSeparator()
	default:
		return []rune(value)[0]
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
