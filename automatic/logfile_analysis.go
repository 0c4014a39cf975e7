package automatic

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// AnalyzeLogFile reads the game records written by StartCompVComp and
// summarises them.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return AnalyzeRecords(file)
}

func AnalyzeRecords(r io.Reader) (*Summary, error) {
	dec := yaml.NewDecoder(r)
	sb := &summaryBuilder{}
	for {
		rec := &Record{}
		err := dec.Decode(rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		sb.add(rec)
	}
	return sb.finish(), nil
}
