package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/leshachaplin/eventreporter/domain"
)

func readFingerprint(path string) (*domain.Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fingerprint: %w", err)
	}
	defer f.Close()

	fp := &domain.Fingerprint{}
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err = dec.Decode(fp); err != nil {
		return nil, fmt.Errorf("decode fingerprint %s: %w", path, err)
	}
	return fp, nil
}
