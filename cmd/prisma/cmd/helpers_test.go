package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

const (
	schemaFixture = "../../../prisma/schema.prisma"
	seedFixture   = "../../../prisma/seed.yaml"
)

// resetGlobalFlags volta as flags ao estado inicial entre execuções
func resetGlobalFlags() {
	configFile = ""
	schemaPath = ""
	verbose = false

	validateWatchFlag = false
	generateWatchFlag = false
	generateModuleFlag = ""
	formatCheckFlag = false

	providerFlag = ""
	databaseFlag = ""
	initForce = false

	migrateDevName = ""
	migrateDevCreateOnly = false
	migrateDevSkipGenerate = false
	migrateResetForce = false
	migrateResetSkipSeed = false
	migrateResolveApplied = ""
	migrateResolveRolledBack = ""
	migrateDiffFromEmpty = false
	migrateDiffScript = false
	migrateDiffOut = ""

	dbPushSkipGenerate = false
	dbExecuteFile = ""
	dbExecuteStdin = false
	dbHealthJSON = false
	dbHealthTimeout = 5 * time.Second
}

// runCLI executa o binário em memória e devolve a saída
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetGlobalFlags()

	var buf bytes.Buffer
	out = &buf
	colorsEnabled = 0
	t.Cleanup(func() {
		out = os.Stdout
		in = os.Stdin
	})

	err := newApp().Run(args)
	return buf.String(), err
}

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("fixture %s: %v", path, err)
	}
	return data
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// setupProject cria, num diretório temporário que vira o diretório atual,
// um projeto com o schema do bemestar e um banco SQLite vazio
func setupProject(t *testing.T) string {
	t.Helper()
	schema := readFixture(t, schemaFixture)
	seed := readFixture(t, seedFixture)

	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, "prisma/schema.prisma", string(schema))
	writeFile(t, "prisma/seed.yaml", string(seed))
	writeFile(t, "prisma.conf", `schema = "prisma/schema.prisma"

[datasource]
provider = "sqlite"
url = "file:`+filepath.ToSlash(filepath.Join(dir, "dev.db"))+`"

[migrations]
path = "prisma/migrations"
seed = "prisma/seed.yaml"

[generator]
output = "db"

[log]
levels = ["error"]
`)
	return dir
}

func migrationDirs(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir("prisma/migrations")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Errorf("expected output to contain %q, got:\n%s", want, output)
	}
}

// chdir muda o diretório atual durante o teste e restaura o anterior ao fim
// (equivalente a t.Chdir, disponível só a partir do Go 1.24)
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
