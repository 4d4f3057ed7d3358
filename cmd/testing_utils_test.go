package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdex/configviewer/internal/configs"
	"github.com/spf13/cobra"
)

const testGlobalXML = `<?xml version='1.0' encoding='utf-8' standalone='yes' ?>
<settings version="213">
  <setting id="1" name="wifi_on" value="1" package="android" defaultValue="1" defaultSysSet="true" />
  <setting id="2" name="adb_enabled" value="1" package="android" />
  <setting id="3" name="zen_mode" value="0" package="com.android.systemui" />
  <setting id="4" name="orphan" />
</settings>
`

var testStores = map[string]string{
	"settings_config.xml": `<settings version="-1" />`,
	"settings_global.xml": testGlobalXML,
	"settings_secure.xml": `<settings><setting name="android_id" value="abc123" package="android" /></settings>`,
	"settings_system.xml": `<settings><setting name="volume_music" value="11" package="android" /></settings>`,
}

// setupTestEnvironment points preferences and history at a temporary
// directory and returns a directory of settings stores for the dir source.
// Stores named in skip are not written.
func setupTestEnvironment(t *testing.T, skip ...string) string {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	tempDir := t.TempDir()
	originalUserSettings := configs.UserViewerSettings
	configs.UserViewerSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(tempDir, "config"),
		UserDataPath:    filepath.Join(tempDir, "data"),
	}
	t.Cleanup(func() {
		configs.UserViewerSettings = originalUserSettings
		ResetGlobalState()
		ResetConfigState()
	})

	storeDir := filepath.Join(tempDir, "pulled")
	if err := os.MkdirAll(storeDir, 0755); err != nil {
		t.Fatalf("Failed to create store directory: %v", err)
	}
	skipped := make(map[string]bool)
	for _, name := range skip {
		skipped[name] = true
	}
	for name, content := range testStores {
		if skipped[name] {
			continue
		}
		if err := os.WriteFile(filepath.Join(storeDir, name), []byte(content), 0600); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return storeDir
}

// runCLI executes the command line given by args against fresh command state.
func runCLI(args ...string) (string, error) {
	return runCLIWith(nil, args...)
}

// runCLIWith is runCLI with a hook that runs after state is reset.
func runCLIWith(prepare func(), args ...string) (string, error) {
	ResetGlobalState()
	ResetConfigState()
	if prepare != nil {
		prepare()
	}

	rootCmd := &cobra.Command{
		Use:           "configviewer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(SettingsCmd)
	rootCmd.AddCommand(ConfigCmd)
	rootCmd.SetArgs(args)

	return captureOutput(rootCmd.Execute)
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	copyPipe := func(r io.Reader, out chan<- string) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		out <- buf.String()
	}
	go copyPipe(stdoutReader, stdoutChan)
	go copyPipe(stderrReader, stderrChan)

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}
