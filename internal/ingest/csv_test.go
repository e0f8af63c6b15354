package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `OPIS Truckstop ID,Truckstop Name,Address,City,State,Rack ID,Retail Price
1000,WOODSHED OF BIG CABIN,I-44 EXIT 283 & US-69,Big Cabin,OK,307,3.009
2000,KWIK TRIP #1075,I-94 & HWY 12,Hudson,WI,,3.459
`

func TestParseStations(t *testing.T) {
	stations, err := ParseStations(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, stations, 2)

	first := stations[0]
	assert.Equal(t, 1000, first.OpisID)
	assert.Equal(t, "WOODSHED OF BIG CABIN", first.Name)
	assert.Equal(t, "Big Cabin", first.City)
	assert.Equal(t, "OK", first.State)
	require.NotNil(t, first.RackID)
	assert.Equal(t, 307, *first.RackID)
	assert.Equal(t, 3.009, first.RetailPrice)
	assert.Nil(t, first.Location, "stations arrive ungeocoded")

	assert.Nil(t, stations[1].RackID, "blank rack id parses to nil")
}

func TestParseStationsColumnOrderIrrelevant(t *testing.T) {
	csv := `Retail Price,State,City,Address,Truckstop Name,OPIS Truckstop ID,Rack ID
3.50,CO,Denver,123 Main St,TEST STOP,42,7
`
	stations, err := ParseStations(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, 42, stations[0].OpisID)
	assert.Equal(t, 3.50, stations[0].RetailPrice)
}

func TestParseStationsMissingColumn(t *testing.T) {
	csv := `OPIS Truckstop ID,Truckstop Name,Address,City,State,Rack ID
1000,TEST,ADDR,Denver,CO,1
`
	_, err := ParseStations(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Retail Price")
}

func TestParseStationsBadPrice(t *testing.T) {
	csv := `OPIS Truckstop ID,Truckstop Name,Address,City,State,Rack ID,Retail Price
1000,TEST,ADDR,Denver,CO,1,notaprice
`
	_, err := ParseStations(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseStationsHeaderOnly(t *testing.T) {
	csv := "OPIS Truckstop ID,Truckstop Name,Address,City,State,Rack ID,Retail Price\n"
	stations, err := ParseStations(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, stations)
}
