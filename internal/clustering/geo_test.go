package clustering

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommurray222/candid-hospitality/internal/analysis"
	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		want                   float64
		delta                  float64
	}{
		{"same point", 51.5074, -0.1278, 51.5074, -0.1278, 0, 1e-9},
		{"london to paris", 51.5074, -0.1278, 48.8566, 2.3522, 343.5, 1},
		{"quarter meridian", 0, 0, 90, 0, EarthRadiusKm * math.Pi / 2, 1e-6},
		{"antipodes", 0, 0, 0, 180, EarthRadiusKm * math.Pi, 1e-6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Haversine(tt.lat1, tt.lng1, tt.lat2, tt.lng2), tt.delta)
		})
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	a := Haversine(53.4808, -2.2426, 55.9533, -3.1883)
	b := Haversine(55.9533, -3.1883, 53.4808, -2.2426)
	assert.InDelta(t, a, b, 1e-9)
}

func TestNearestCity(t *testing.T) {
	nan := math.NaN()
	f := analysis.NewFrame("users", 5).
		AddCategorical("current_city", []string{" london ", "Salford", "Bath", "Leeds", ""}).
		AddRawNumeric("lat", []float64{51.5, 53.48, 51.38, nan, 53.8}).
		AddRawNumeric("lng", []float64{-0.12, -2.29, -2.36, nan, -1.55})

	cities := []City{
		{Name: "London", Lat: 51.5074, Lng: -0.1278},
		{Name: "Manchester", Lat: 53.4808, Lng: -2.2426},
		{Name: "Bristol", Lat: 51.4545, Lng: -2.5879},
		{Name: "Leeds", Lat: 53.8008, Lng: -1.5491},
	}
	require.NoError(t, NearestCity(f, "current_city", "lat", "lng", cities))

	got, err := f.Categorical(ColNearestCity)
	require.NoError(t, err)
	assert.Equal(t, []string{" london ", "Manchester", "Bristol", "", "Leeds"}, got)
}

func TestNearestCity_Errors(t *testing.T) {
	f := analysis.NewFrame("users", 1).
		AddCategorical("current_city", []string{"Leeds"}).
		AddRawNumeric("lat", []float64{53.8})

	err := NearestCity(f, "current_city", "lat", "lng", DefaultCities)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeColumn))

	err = NearestCity(f, "current_city", "lat", "lat", nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestLoadCities(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "cities.csv")
	require.NoError(t, os.WriteFile(good, []byte("city,latitude,longitude\nYork,53.96,-1.08\nBath,51.38,-2.36\n"), 0644))
	cities, err := LoadCities(good)
	require.NoError(t, err)
	assert.Equal(t, []City{{"York", 53.96, -1.08}, {"Bath", 51.38, -2.36}}, cities)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("city,lat,lng\nYork,north,-1.08\n"), 0644))
	_, err = LoadCities(bad)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("city,lat,lng\n"), 0644))
	_, err = LoadCities(empty)
	assert.Error(t, err)
}
