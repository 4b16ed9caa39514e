package snowtype

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
)

// fingerprintPrefix introduces the fingerprint line in the artifact header.
// The recorded value decides whether a later run may skip regeneration.
const fingerprintPrefix = "// Config fingerprint: sha256:"

// configFingerprint hashes the raw config file content. Any byte change to
// the configuration, and nothing else, changes the fingerprint.
func configFingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// readArtifactFingerprint scans the header of an existing artifact for its
// recorded fingerprint. A missing file, or a file without the marker in its
// leading comment block, reports false and forces regeneration.
func readArtifactFingerprint(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "//") {
			break
		}
		if fp, ok := strings.CutPrefix(line, fingerprintPrefix); ok {
			return fp, true
		}
	}
	return "", false
}
