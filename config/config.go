package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads a local .env file when present. A missing file is not an
// error; deployments supply configuration through the environment.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}

func Env() string {
	return os.Getenv("ENVIRONMENT")
}

func ServerPort() string {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "5000"
	}
	return port
}

func SecretKey() string {
	key := os.Getenv("SECRET_KEY")
	if key == "" {
		key = "dev-secret-change-me"
	}
	return key
}

func UploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

func TranslateURL() string {
	return os.Getenv("LIBRETRANSLATE_URL")
}

func TranslateAPIKey() string {
	return os.Getenv("LIBRETRANSLATE_API_KEY")
}
