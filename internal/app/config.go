package app

import (
	"strings"
	"time"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/utils"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	MediaRoot      string
	CertFontPath   string
	CacheBackend   string
	YearChoiceSpan int
	AllowedOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 86400, log)
	mediaRoot := utils.GetEnv("MEDIA_ROOT", "./media", log)
	certFontPath := utils.GetEnv("CERTIFICATE_FONT", "", log)
	cacheBackend := utils.GetEnv("CACHE_BACKEND", "redis", log)
	yearChoiceSpan := utils.GetEnvAsInt("YEAR_CHOICE_SPAN", 5, log)
	origins := utils.GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000", log)
	return Config{
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		MediaRoot:      mediaRoot,
		CertFontPath:   certFontPath,
		CacheBackend:   cacheBackend,
		YearChoiceSpan: yearChoiceSpan,
		AllowedOrigins: splitOrigins(origins),
	}
}

func splitOrigins(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
