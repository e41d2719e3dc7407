package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	ProviderPostgreSQL = "postgresql"
	ProviderMySQL      = "mysql"
	ProviderSQLite     = "sqlite"

	DriverPgx = "pgx"
	DriverPq  = "pq"
)

// Config representa o prisma.conf
type Config struct {
	Schema     string            `toml:"schema"`
	Migrations *MigrationsConfig `toml:"migrations"`
	Datasource *DatasourceConfig `toml:"datasource"`
	Pool       *PoolConfig       `toml:"pool"`
	Log        *LogConfig        `toml:"log"`
	Cache      *CacheConfig      `toml:"cache"`
	Generator  *GeneratorConfig  `toml:"generator"`
}

// MigrationsConfig configura as migrations
type MigrationsConfig struct {
	Path string `toml:"path"` // ex: "prisma/migrations"
	// Seed é um arquivo .yaml/.yml carregado pelo cliente, ou um comando
	Seed string `toml:"seed"`
}

// DatasourceConfig configura a fonte de dados
type DatasourceConfig struct {
	Provider          string `toml:"provider"`
	URL               string `toml:"url"`
	ShadowDatabaseURL string `toml:"shadowDatabaseUrl"`
	// Driver escolhe a implementação para PostgreSQL: "pgx" (padrão) ou "pq"
	Driver string `toml:"driver"`
}

// PoolConfig espelha as opções do pgxpool e do database/sql
type PoolConfig struct {
	MaxConns        int32    `toml:"maxConns"`
	MinConns        int32    `toml:"minConns"`
	MaxConnLifetime Duration `toml:"maxConnLifetime"`
	MaxConnIdleTime Duration `toml:"maxConnIdleTime"`
}

type LogConfig struct {
	Levels []string `toml:"levels"`
	Format string   `toml:"format"` // text | json
}

type CacheConfig struct {
	Enabled    bool     `toml:"enabled"`
	TTL        Duration `toml:"ttl"`
	MaxEntries int      `toml:"maxEntries"`
}

// GeneratorConfig configura a geração de código
type GeneratorConfig struct {
	Output  string `toml:"output"`
	Package string `toml:"package"`
}

// Duration aceita strings como "30m" no TOML
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("duração inválida %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load carrega a configuração do arquivo prisma.conf. Com configPath vazio,
// procura prisma.conf subindo a partir do diretório atual.
func Load(configPath string) (*Config, error) {
	loadDotEnv()

	if configPath == "" {
		found, err := findUpward("prisma.conf")
		if err != nil {
			return nil, err
		}
		configPath = found
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler prisma.conf: %w", err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, err
	}

	// caminhos relativos são resolvidos a partir do prisma.conf
	cfg.resolvePaths(filepath.Dir(configPath))
	return cfg, nil
}

// Parse decodifica, expande variáveis e valida o conteúdo de um prisma.conf
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(quoteBareEnv(data), &cfg); err != nil {
		return nil, fmt.Errorf("erro ao parsear prisma.conf: %w", err)
	}

	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}
	return &cfg, nil
}

// loadDotEnv carrega o primeiro .env encontrado subindo os diretórios.
// Variáveis já definidas no ambiente não são sobrescritas.
func loadDotEnv() {
	if path, err := findUpward(".env"); err == nil {
		_ = godotenv.Load(path)
	}
}

func findUpward(name string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("erro ao obter diretório atual: %w", err)
	}

	dir := wd
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s não encontrado", name)
		}
		dir = parent
	}
}

func (c *Config) expandEnvVars() {
	c.Schema = expandString(c.Schema)
	if c.Datasource != nil {
		c.Datasource.URL = expandString(c.Datasource.URL)
		c.Datasource.ShadowDatabaseURL = expandString(c.Datasource.ShadowDatabaseURL)
	}
	if c.Migrations != nil {
		c.Migrations.Seed = expandString(c.Migrations.Seed)
	}
}

// valores sem aspas como url = env("DATABASE_URL") não são TOML válido
var bareEnvPattern = regexp.MustCompile(`(?m)^([ \t]*[A-Za-z0-9_-]+[ \t]*=[ \t]*)env\(\s*["']([A-Za-z_][A-Za-z0-9_]*)["']\s*\)([ \t]*(?:#.*)?)$`)

// quoteBareEnv reescreve env("VAR") sem aspas como "${VAR}" antes do decode
func quoteBareEnv(data string) string {
	return bareEnvPattern.ReplaceAllString(data, `${1}"$${${2}}"${3}`)
}

var envCallPattern = regexp.MustCompile(`env\(\s*["']([A-Za-z_][A-Za-z0-9_]*)["']\s*\)`)

// expandString expande env("VAR"), env('VAR'), ${VAR} e $VAR
func expandString(s string) string {
	s = envCallPattern.ReplaceAllStringFunc(s, func(m string) string {
		return os.Getenv(envCallPattern.FindStringSubmatch(m)[1])
	})
	return os.ExpandEnv(s)
}

func (c *Config) resolvePaths(base string) {
	if base == "" || base == "." {
		return
	}
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.Schema = join(c.Schema)
	c.Migrations.Path = join(c.Migrations.Path)
	c.Generator.Output = join(c.Generator.Output)
	if c.SeedIsYAML() {
		c.Migrations.Seed = join(c.Migrations.Seed)
	}
}

// SeedIsYAML indica se migrations.seed aponta para um arquivo de dados
// em vez de um comando
func (c *Config) SeedIsYAML() bool {
	if c.Migrations == nil {
		return false
	}
	ext := strings.ToLower(filepath.Ext(c.Migrations.Seed))
	return ext == ".yaml" || ext == ".yml"
}

// Validate preenche padrões e valida a configuração
func (c *Config) Validate() error {
	if c.Schema == "" {
		c.Schema = "prisma/schema.prisma"
	}

	if c.Migrations == nil {
		c.Migrations = &MigrationsConfig{}
	}
	if c.Migrations.Path == "" {
		c.Migrations.Path = "prisma/migrations"
	}

	if c.Datasource == nil {
		return fmt.Errorf("datasource é obrigatório")
	}
	if strings.TrimSpace(c.Datasource.URL) == "" {
		return fmt.Errorf("datasource.url é obrigatório (use env(\"DATABASE_URL\") ou ${DATABASE_URL})")
	}

	if c.Datasource.Provider == "" {
		c.Datasource.Provider = DetectProvider(c.Datasource.URL)
	}
	switch c.Datasource.Provider {
	case ProviderPostgreSQL, ProviderMySQL, ProviderSQLite:
	case "postgres":
		c.Datasource.Provider = ProviderPostgreSQL
	case "sqlite3":
		c.Datasource.Provider = ProviderSQLite
	case "":
		return fmt.Errorf("não foi possível inferir o provider a partir de datasource.url")
	default:
		return fmt.Errorf("provider não suportado: %s", c.Datasource.Provider)
	}

	switch c.Datasource.Driver {
	case "":
		c.Datasource.Driver = DriverPgx
	case DriverPgx, DriverPq:
	default:
		return fmt.Errorf("datasource.driver inválido: %s (use pgx ou pq)", c.Datasource.Driver)
	}

	if c.Pool == nil {
		c.Pool = &PoolConfig{}
	}
	if c.Pool.MaxConns <= 0 {
		c.Pool.MaxConns = 10
	}
	if c.Pool.MinConns < 0 || c.Pool.MinConns > c.Pool.MaxConns {
		return fmt.Errorf("pool.minConns deve estar entre 0 e pool.maxConns")
	}
	if c.Pool.MaxConnLifetime.Duration == 0 {
		c.Pool.MaxConnLifetime.Duration = time.Hour
	}
	if c.Pool.MaxConnIdleTime.Duration == 0 {
		c.Pool.MaxConnIdleTime.Duration = 30 * time.Minute
	}

	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format inválido: %s (use text ou json)", c.Log.Format)
	}

	if c.Cache == nil {
		c.Cache = &CacheConfig{}
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = time.Minute
	}
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = 1000
	}

	if c.Generator == nil {
		c.Generator = &GeneratorConfig{}
	}
	if c.Generator.Output == "" {
		c.Generator.Output = "db"
	}
	if c.Generator.Package == "" {
		c.Generator.Package = filepath.Base(c.Generator.Output)
	}

	return nil
}

// DetectProvider infere o provider pelo esquema da URL
func DetectProvider(url string) string {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return ProviderPostgreSQL
	case strings.HasPrefix(url, "mysql://"):
		return ProviderMySQL
	case strings.HasPrefix(url, "file:"), strings.HasPrefix(url, "sqlite:"),
		strings.HasSuffix(url, ".db"), strings.HasSuffix(url, ".sqlite"):
		return ProviderSQLite
	}
	return ""
}

// GetSchemaPath retorna o caminho do schema.prisma
func (c *Config) GetSchemaPath() string {
	if c.Schema != "" {
		return c.Schema
	}
	return "prisma/schema.prisma"
}

// GetMigrationsPath retorna o caminho das migrations
func (c *Config) GetMigrationsPath() string {
	if c.Migrations != nil && c.Migrations.Path != "" {
		return c.Migrations.Path
	}
	return "prisma/migrations"
}

// GetDatabaseURL retorna a URL do banco de dados (já expandida)
func (c *Config) GetDatabaseURL() string {
	if c.Datasource != nil {
		return c.Datasource.URL
	}
	return ""
}

// GetProvider retorna o provider normalizado
func (c *Config) GetProvider() string {
	if c.Datasource != nil {
		return c.Datasource.Provider
	}
	return ""
}

// GetLogLevels retorna os níveis de log configurados
func (c *Config) GetLogLevels() []string {
	if c.Log != nil {
		return c.Log.Levels
	}
	return nil
}
