package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// pepperBytes is the entropy of a generated pepper.
const pepperBytes = 32

// DefaultPepperFile is used when SetPepperPath was never called.
const DefaultPepperFile = "pepper"

var (
	// Pepper is loaded from a file, or generated and written there on first use.
	pepperMu   sync.Mutex
	pepper     string
	pepperFile = DefaultPepperFile
)

// SetPepperPath changes where the pepper is read from and forgets any pepper
// already loaded.
func SetPepperPath(file string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	pepperFile = file
	pepper = ""
}

// GetPepper returns the pepper, loading or generating it on first call.
func GetPepper() (string, error) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != "" {
		return pepper, nil
	}

	p, err := loadOrGeneratePepper(pepperFile)
	if err != nil {
		return "", err
	}
	pepper = p
	return pepper, nil
}

// ReloadPepper re-reads the pepper file. The app calls it at startup so a
// broken pepper path fails the boot instead of the first registration.
func ReloadPepper() error {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	p, err := loadOrGeneratePepper(pepperFile)
	if err != nil {
		return err
	}
	pepper = p
	return nil
}

func loadOrGeneratePepper(file string) (string, error) {
	file = filepath.Clean(file)
	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return "", err
	}

	raw, err := os.ReadFile(file)
	switch {
	case err == nil:
		p := strings.TrimSpace(string(raw))
		if p == "" {
			return "", errors.New("pepper file is empty")
		}
		return p, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", err
	}

	buf := make([]byte, pepperBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	p := base64.RawURLEncoding.EncodeToString(buf)

	if err := os.WriteFile(file, []byte(p), 0600); err != nil {
		return "", err
	}
	return p, nil
}
