package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fuel-route-service/internal/domain"
)

// Column headers of the OPIS retail fuel price export. Order in the file does
// not matter, presence does.
var requiredColumns = []string{
	"OPIS Truckstop ID",
	"Truckstop Name",
	"Address",
	"City",
	"State",
	"Rack ID",
	"Retail Price",
}

// ParseStations reads a fuel price list CSV into station rows. Stations come
// in without coordinates; the geocode backfill worker fills those in later.
func ParseStations(r io.Reader) ([]domain.Station, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("parse stations: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("parse stations: missing column %q", col)
		}
	}

	var stations []domain.Station
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("parse stations: line %d: %w", line, err)
		}

		field := func(col string) string {
			return strings.TrimSpace(record[index[col]])
		}

		opisID, err := strconv.Atoi(field("OPIS Truckstop ID"))
		if err != nil {
			return nil, fmt.Errorf("parse stations: line %d: bad OPIS id %q", line, field("OPIS Truckstop ID"))
		}
		price, err := strconv.ParseFloat(field("Retail Price"), 64)
		if err != nil {
			return nil, fmt.Errorf("parse stations: line %d: bad retail price %q", line, field("Retail Price"))
		}

		var rackID *int
		if raw := field("Rack ID"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("parse stations: line %d: bad rack id %q", line, raw)
			}
			rackID = &id
		}

		stations = append(stations, domain.Station{
			OpisID:      opisID,
			Name:        field("Truckstop Name"),
			Address:     field("Address"),
			City:        field("City"),
			State:       field("State"),
			RackID:      rackID,
			RetailPrice: price,
		})
	}

	return stations, nil
}
