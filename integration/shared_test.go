//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedSbnPath holds the path to a shared sbn binary built once for all tests.
	sharedSbnPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getSbnBinary returns the path to the sbn binary, building it once if needed.
func getSbnBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "sbn-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		sbnPath := filepath.Join(tempDir, "sbn")
		buildCmd := exec.Command("go", "build", "-o", sbnPath, "./cmd/sbn")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build sbn: %v", err))
		}

		sharedSbnPath = sbnPath
	})

	return sharedSbnPath
}

// writeReferenceTables writes a small consistent table bundle for one
// edition and returns the directory.
func writeReferenceTables(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"Taxonomy_es.csv": "ID,Categoria,Subcategoria,Actividad,Objetivo\n" +
			"1,Proteccion,Bosque ripario,Cercado,Reducir sedimentos\n" +
			"2,Proteccion,Bosque ripario,Cercado,Mejorar caudal base\n",
		"Indicators_es.csv": "id,SbN,Indicadores priorizados,Unidad de medida,Rango_Min,Rango_Max\n" +
			"10,1,Cobertura vegetal,%,0,100\n" +
			"11,1,Carga de sedimentos,t/ha,0,10\n" +
			"12,2,Caudal base,l/s,0,50\n",
		"Weight_Matrix_es.csv": "SbN,Indicador,Peso\n1,10,0.6\n1,11,0.4\n2,12,1\n",
		"Barriers_es.csv": "Codigo_Barrera,Descripcion,Subcategoria,Grupo,Codigo_Grupo,Severidad\n" +
			"GB0101,Tenencia incierta,4,Gobernanza,G01,0.5\n",
		"basin.csv": "indicator_id,value\n10,80\n11,5\n12,10\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func runSbnCommand(t *testing.T, args ...string) error {
	sbnPath := getSbnBinary()
	cmd := exec.Command(sbnPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
