// utils/safelog.go
// ============================================================================
// SAFE LOGGING - masks user identifiers and tokens in production
// ============================================================================

package utils

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ============================================================================
// CONFIGURATION
// ============================================================================

var (
	// IsProduction enables masking of identifiers in every log line.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	loggerMu sync.RWMutex
	sugar    = newSugar(IsProduction, os.Getenv("LOG_LEVEL"))
)

func parseLevel(raw string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newSugar(production bool, level string) *zap.SugaredLogger {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// InitLogger rebuilds the process logger. Called once from the CLI after the
// environment has been loaded.
func InitLogger(production bool, level string) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	IsProduction = production
	sugar = newSugar(production, level)
}

// SetLogger swaps the underlying logger. Tests use zap.NewNop or an observer.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	sugar = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func Logger() *zap.SugaredLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return sugar
}

func SyncLogger() {
	_ = Logger().Sync()
}

// ============================================================================
// MASKING PATTERNS
// ============================================================================

var (
	uuidRegex   = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_.]+`)
	jwtRegex    = regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+`)
)

func shortenUUID(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return "***"
}

// MaskString hides tokens and shortens UUIDs in a message.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}
	result := bearerRegex.ReplaceAllString(input, "Bearer ***")
	result = jwtRegex.ReplaceAllString(result, "***JWT***")
	result = uuidRegex.ReplaceAllStringFunc(result, shortenUUID)
	return result
}

// MaskID keeps the first 8 characters of an id.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

// MaskUsername keeps the first character of a username.
func MaskUsername(username string) string {
	if !IsProduction {
		return username
	}
	if username == "" {
		return "***"
	}
	return username[:1] + "***"
}

// ============================================================================
// SAFE LOGGING FUNCTIONS
// ============================================================================

func SafeDebug(format string, args ...interface{}) {
	Logger().Debug(MaskString(fmt.Sprintf(format, args...)))
}

func SafeInfo(format string, args ...interface{}) {
	Logger().Info(MaskString(fmt.Sprintf(format, args...)))
}

func SafeWarn(format string, args ...interface{}) {
	Logger().Warn(MaskString(fmt.Sprintf(format, args...)))
}

func SafeError(format string, args ...interface{}) {
	Logger().Error(MaskString(fmt.Sprintf(format, args...)))
}

// ============================================================================
// DOMAIN LOGGING
// ============================================================================

func LogAuthAction(action string, username string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	Logger().Infow("[Auth] "+action,
		"username", MaskUsername(username),
		"status", status)
}

func LogAPIRequest(method string, path string, userID string, statusCode int, duration string) {
	p := path
	if IsProduction {
		p = uuidRegex.ReplaceAllStringFunc(path, shortenUUID)
	}
	Logger().Infow("[API] "+method+" "+p,
		"user", MaskID(userID),
		"status", statusCode,
		"duration", duration)
}

func LogWebSocket(action string, threadID string, sessions int) {
	Logger().Infow("[WS] "+action,
		"thread", MaskID(threadID),
		"sessions", sessions)
}

func LogRecommendation(useCase string, budget float64, total float64, steps int) {
	Logger().Infow("[Advisor] recommendation built",
		"use_case", useCase,
		"budget", budget,
		"total", total,
		"downgrade_steps", steps)
}

// ============================================================================
// UTILITIES
// ============================================================================

func GetEnvMode() string {
	if IsProduction {
		return "production"
	}
	return "development"
}

func LogStartup(appName string, version string, port string) {
	Logger().Infow(fmt.Sprintf("🚀 %s v%s starting...", appName, version),
		"mode", GetEnvMode(),
		"port", port)
	if IsProduction {
		Logger().Info("⚠️  Production mode: identifiers will be masked in logs")
	}
}
