package config

import (
	"encoding/json"
	"fmt"
	"github.com/joho/godotenv"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Document is the shared ecommerce-config.json every service env is rendered from.
type Document struct {
	Database struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Name     string `json:"name"`
		User     string `json:"user"`
		Password string `json:"password"`
		Options  struct {
			TrustedConnection bool   `json:"trustedConnection"`
			SSLMode           string `json:"sslMode"`
		} `json:"options"`
	} `json:"database"`
	Ports struct {
		Backend  int `json:"backend"`
		Admin    int `json:"admin"`
		Customer int `json:"customer"`
	} `json:"ports"`
	JWTSecret string `json:"jwtSecret"`
}

// Relative directories, under the project root, that receive a .env file.
const (
	BackendDir  = "backend"
	AdminDir    = "frontend/admin-dashboard"
	CustomerDir = "frontend/customer-ui"
)

func ReadDocument(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return d, fmt.Errorf("decode config document: %w", err)
	}
	if d.Database.Host == "" || d.Database.Name == "" {
		return d, fmt.Errorf("config document: database.host and database.name are required")
	}
	if d.Ports.Backend == 0 {
		return d, fmt.Errorf("config document: ports.backend is required")
	}
	return d, nil
}

// Render maps the document to one env map per target directory.
func Render(d Document) map[string]map[string]string {
	port := d.Database.Port
	if port == 0 {
		port = 5432
	}
	sslMode := d.Database.Options.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	backend := map[string]string{
		"DB_HOST":               d.Database.Host,
		"DB_PORT":               strconv.Itoa(port),
		"DB_NAME":               d.Database.Name,
		"DB_SSLMODE":            sslMode,
		"DB_TRUSTED_CONNECTION": strconv.FormatBool(d.Database.Options.TrustedConnection),
		"HTTP_ADDR":             ":" + strconv.Itoa(d.Ports.Backend),
	}
	if !d.Database.Options.TrustedConnection {
		backend["DB_USER"] = d.Database.User
		backend["DB_PASSWORD"] = d.Database.Password
	}
	if d.JWTSecret != "" {
		backend["JWT_SECRET"] = d.JWTSecret
	}

	apiURL := fmt.Sprintf("http://localhost:%d/api", d.Ports.Backend)
	return map[string]map[string]string{
		BackendDir:  backend,
		AdminDir:    {"PORT": strconv.Itoa(d.Ports.Admin), "REACT_APP_API_URL": apiURL},
		CustomerDir: {"PORT": strconv.Itoa(d.Ports.Customer), "REACT_APP_API_URL": apiURL},
	}
}

// WriteEnvFiles writes <root>/<dir>/.env for every rendered target and
// returns the written paths.
func WriteEnvFiles(root string, d Document) ([]string, error) {
	var written []string
	for dir, env := range Render(d) {
		target := filepath.Join(root, dir)
		if err := os.MkdirAll(target, 0o755); err != nil {
			return written, fmt.Errorf("create %s: %w", target, err)
		}
		path := filepath.Join(target, ".env")
		if err := godotenv.Write(env, path); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
