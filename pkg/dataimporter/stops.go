package dataimporter

import (
	"context"
	"os"
	"strings"

	"github.com/buswatch/buswatch/pkg/database"
	"github.com/buswatch/buswatch/pkg/transit"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

// Only Translink Metro stops carry this AtcoCode prefix
const metroAtcoPrefix = "7000"

type stopRecord struct {
	AtcoCode   string  `csv:"AtcoCode"`
	CommonName string  `csv:"CommonName"`
	Latitude   float64 `csv:"Latitude"`
	Longitude  float64 `csv:"Longitude"`
}

// ImportStops loads the stops CSV export and upserts every Metro stop.
func ImportStops(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var records []stopRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return err
	}

	stopStore := database.StopStore{}

	imported := 0
	for _, record := range records {
		if !strings.HasPrefix(record.AtcoCode, metroAtcoPrefix) {
			continue
		}

		name := strings.TrimSpace(record.CommonName)
		if name == "" || name == "0" {
			name = "Unnamed stop"
		}

		err := stopStore.Upsert(ctx, &transit.Stop{
			PrimaryIdentifier: record.AtcoCode,
			Name:              name,
			Latitude:          record.Latitude,
			Longitude:         record.Longitude,
		})
		if err != nil {
			return err
		}

		imported += 1
	}

	log.Info().Int("stops", imported).Msg("Imported stops")

	return nil
}
