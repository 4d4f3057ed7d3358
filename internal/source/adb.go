package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/settings"
)

// ADB reads the stores from an attached device through adb and su.
type ADB struct {
	// ADBPath is the adb binary. Empty means $ANDROID_HOME/platform-tools/adb
	// when ANDROID_HOME is set, otherwise adb from PATH.
	ADBPath string
	// Serial selects the device when more than one is attached.
	Serial string
	Runner Runner
}

// Device is one line of "adb devices".
type Device struct {
	Serial string
	State  string
}

func (a *ADB) Name() string {
	return NameADB
}

func (a *ADB) adb() string {
	if a.ADBPath != "" {
		return a.ADBPath
	}
	if home := os.Getenv("ANDROID_HOME"); home != "" {
		return filepath.Join(home, "platform-tools", "adb")
	}
	return "adb"
}

func (a *ADB) args(args ...string) []string {
	if a.Serial == "" {
		return args
	}
	return append([]string{"-s", a.Serial}, args...)
}

// fetchDone is printed after the store only when cat succeeds. exec-out
// carries neither the remote exit status nor a separate stderr, so its
// absence is how a failed su or cat is told apart from store content.
const fetchDone = "CONFIGVIEWER_FETCH_OK"

// Fetch uses exec-out so binary stores arrive without tty newline mangling.
// adb joins its arguments into one remote command line, so the su command
// is quoted as a whole.
func (a *ADB) Fetch(ctx context.Context, kind settings.Kind) ([]byte, error) {
	path := settings.PathFor(kind)
	remote := "cat " + path + " && printf %s " + fetchDone
	out, err := runnerOrDefault(a.Runner).Run(ctx, a.adb(), a.args("exec-out", "su", "-c", shellQuote(remote))...)
	if err != nil {
		return nil, unavailable(path, err)
	}
	data, ok := bytes.CutSuffix(out, []byte(fetchDone))
	if !ok {
		return nil, unavailable(path, remoteFailure(out))
	}
	return data, nil
}

// remoteFailure turns what the device printed instead of the store into an
// error, keeping only the first line.
func remoteFailure(out []byte) error {
	msg := strings.TrimSpace(string(out))
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = strings.TrimSpace(msg[:i])
	}
	if msg == "" {
		return errors.New("remote command failed without output")
	}
	return errors.New(msg)
}

func (a *ADB) CheckRoot(ctx context.Context) error {
	out, err := runnerOrDefault(a.Runner).Run(ctx, a.adb(), a.args("exec-out", "su", "-c", shellQuote("id -u"))...)
	return rootResult(out, err)
}

// Devices lists the attached devices that are ready for commands.
func (a *ADB) Devices(ctx context.Context) ([]Device, error) {
	out, err := runnerOrDefault(a.Runner).Run(ctx, a.adb(), "devices")
	if err != nil {
		return nil, err
	}
	devices := parseDevices(string(out))
	if len(devices) == 0 {
		return nil, kerrors.ErrNoDevice
	}
	return devices, nil
}

func parseDevices(output string) []Device {
	var devices []Device
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] == "List" || strings.HasPrefix(fields[0], "*") {
			continue
		}
		if fields[1] != "device" {
			continue
		}
		devices = append(devices, Device{Serial: fields[0], State: fields[1]})
	}
	return devices
}
