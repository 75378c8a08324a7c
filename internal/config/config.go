package config

import (
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"polluxkart-admin/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	AppName     string
	MongoURI    string
	MongoDBName string

	JWTSecret        string
	JWTExpireMinutes int64
	AdminSetupKey    string

	UploadDir string

	S3BucketName string
	S3Region     string
	S3BaseURL    string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	SMSGatewayHttpURI string

	RemoteLogHttpURI       string
	RemoteTraceRpcURI      string
	RemoteProfilingHttpURI string
}

// SafeConfig adalah struct untuk logging yang aman (tanpa sensitive data)
type SafeConfig struct {
	AppPort                string `json:"app_port"`
	AppName                string `json:"app_name"`
	MongoDBName            string `json:"mongo_db_name"`
	JWTExpireMinutes       int64  `json:"jwt_expire_minutes"`
	UploadDir              string `json:"upload_dir"`
	S3BucketName           string `json:"s3_bucket_name"`
	S3Region               string `json:"s3_region"`
	S3BaseURL              string `json:"s3_base_url"`
	CloudinaryCloudName    string `json:"cloudinary_cloud_name"`
	SMSGatewayHttpURI      string `json:"sms_gateway_http_uri"`
	RemoteLogHttpURI       string `json:"remote_log_http_uri"`
	RemoteTraceRpcURI      string `json:"remote_trace_rpc_uri"`
	RemoteProfilingHttpURI string `json:"remote_profiling_http_uri"`
}

func toSnake(s string) string {
	var out strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			// Tambahkan underscore jika bukan huruf pertama dan sebelumnya bukan underscore
			if i > 0 && s[i-1] != '_' {
				out.WriteRune('_')
			}
			out.WriteRune(unicode.ToLower(r))
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}

// StructAttrs("data", cfg) ➜ []slog.Attr{ slog.String("data.app_port", "3001"), ... }
func StructAttrs(prefix string, s any) []slog.Attr {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	t := v.Type()

	attrs := make([]slog.Attr, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := prefix + "." + jsonKey(f) // mis. "data.app_port"

		switch v.Field(i).Kind() {
		case reflect.String:
			attrs = append(attrs, slog.String(key, v.Field(i).String()))
		case reflect.Int, reflect.Int64, reflect.Int32:
			attrs = append(attrs, slog.Int64(key, v.Field(i).Int()))
		default:
			attrs = append(attrs, slog.Any(key, v.Field(i).Interface()))
		}
	}
	return attrs
}

// Ambil nama tag `json:"..."` kalau ada; fallback ke camelCase->snake
func jsonKey(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		return strings.Split(tag, ",")[0]
	}
	return toSnake(f.Name) // implementasi toSnake sederhana
}

// ToSafeConfig mengkonversi Config ke SafeConfig untuk logging
func (c *Config) ToSafeConfig() SafeConfig {
	return SafeConfig{
		AppPort:                c.AppPort,
		AppName:                c.AppName,
		MongoDBName:            c.MongoDBName,
		JWTExpireMinutes:       c.JWTExpireMinutes,
		UploadDir:              c.UploadDir,
		S3BucketName:           c.S3BucketName,
		S3Region:               c.S3Region,
		S3BaseURL:              c.S3BaseURL,
		CloudinaryCloudName:    c.CloudinaryCloudName,
		SMSGatewayHttpURI:      c.SMSGatewayHttpURI,
		RemoteLogHttpURI:       c.RemoteLogHttpURI,
		RemoteTraceRpcURI:      c.RemoteTraceRpcURI,
		RemoteProfilingHttpURI: c.RemoteProfilingHttpURI,
	}
}

var log = logger.Instance()
var (
	configInstance *Config
	configOnce     sync.Once
)

func setInt64(varName string, fallback int64) int64 {

	val := os.Getenv(varName)
	if val == "" {
		return fallback
	}

	num, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		log.Error("Invalid integer environment variable", slog.String("name", varName), slog.String("error", err.Error()))
		return fallback
	}

	return num
}

func setDefault(varName, fallback string) string {
	if val := os.Getenv(varName); val != "" {
		return val
	}
	return fallback
}

func Instance() *Config {
	configOnce.Do(func() {

		// Load .env file (optional)
		if err := godotenv.Load(); err != nil {
			log.Warn("No .env file found, using system environment variables")
		}

		configInstance = &Config{
			AppPort:     os.Getenv("APP_PORT"),
			AppName:     os.Getenv("APP_NAME"),
			MongoURI:    os.Getenv("MONGO_URI"),
			MongoDBName: os.Getenv("MONGO_DB_NAME"),

			JWTSecret:        os.Getenv("JWT_SECRET"),
			JWTExpireMinutes: setInt64("JWT_EXPIRE_MINUTES", 1440),
			AdminSetupKey:    setDefault("ADMIN_SETUP_KEY", "POLLUXKART_INITIAL_ADMIN_2025"),

			UploadDir: setDefault("UPLOAD_DIR", "uploads"),

			S3BucketName: os.Getenv("S3_BUCKET_NAME"),
			S3Region:     setDefault("S3_REGION", "ap-south-1"),
			S3BaseURL:    os.Getenv("S3_BASE_URL"),

			CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

			SMSGatewayHttpURI: os.Getenv("SMS_GATEWAY_HTTP_URI"),

			RemoteLogHttpURI:       os.Getenv("REMOTE_LOG_HTTP_URI"),
			RemoteTraceRpcURI:      os.Getenv("REMOTE_TRACE_RPC_URI"),
			RemoteProfilingHttpURI: os.Getenv("REMOTE_PROFILING_HTTP_URI"),
		}

		if configInstance.S3BaseURL == "" && configInstance.S3BucketName != "" {
			configInstance.S3BaseURL = "https://" + configInstance.S3BucketName + ".s3." + configInstance.S3Region + ".amazonaws.com"
		}

		// Optional but recommended
		if configInstance.RemoteLogHttpURI == "" {
			log.Warn("Missing REMOTE_LOG_HTTP_URI will skip sending log")
		}
		if configInstance.RemoteTraceRpcURI == "" {
			log.Warn("Missing REMOTE_TRACE_RPC_URI will export traces to stdout")
		}
		if configInstance.RemoteProfilingHttpURI == "" {
			log.Warn("Missing REMOTE_PROFILING_HTTP_URI will skip sending profiling")
		}
		if configInstance.S3BucketName == "" {
			log.Warn("Missing S3_BUCKET_NAME; S3 upload endpoints will respond 503")
		}
		if configInstance.SMSGatewayHttpURI == "" {
			log.Warn("Missing SMS_GATEWAY_HTTP_URI; OTP codes are logged only")
		}
		if configInstance.CloudinaryCloudName == "" || configInstance.CloudinaryAPIKey == "" || configInstance.CloudinaryAPISecret == "" {
			log.Warn("Cloudinary credentials incomplete; signature endpoint will respond 503")
		}

		// Validate required env
		var missing []string
		if configInstance.AppPort == "" {
			missing = append(missing, "APP_PORT")
		}
		if configInstance.AppName == "" {
			missing = append(missing, "APP_NAME")
		}
		if configInstance.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
		if configInstance.MongoDBName == "" {
			missing = append(missing, "MONGO_DB_NAME")
		}
		if configInstance.JWTSecret == "" {
			missing = append(missing, "JWT_SECRET")
		}

		if len(missing) > 0 {
			log.Error("Missing required environment variables", slog.Any("missing", missing))
			os.Exit(1)
		}

		attrs := StructAttrs("data", configInstance.ToSafeConfig())
		anyAttrs := make([]any, len(attrs))
		for i, a := range attrs {
			anyAttrs[i] = a
		}
		log.Info("Configuration loaded successfully", anyAttrs...)
	})

	return configInstance
}
