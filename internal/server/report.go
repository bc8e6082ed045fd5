package server

import (
	"encoding/json"

	"github.com/localrivet/lexsummary/internal/summarizer"
)

func encodeReport(report *summarizer.HealthReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
