package clustering

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tommurray222/candid-hospitality/internal/analysis"
	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371

// ColNearestCity is the column added by NearestCity.
const ColNearestCity = "nearest_city"

// City is a cluster centre users are snapped to.
type City struct {
	Name string
	Lat  float64
	Lng  float64
}

// DefaultCities are the UK hospitality hubs used when no city file is set.
var DefaultCities = []City{
	{Name: "London", Lat: 51.5074, Lng: -0.1278},
	{Name: "Manchester", Lat: 53.4808, Lng: -2.2426},
	{Name: "Birmingham", Lat: 52.4862, Lng: -1.8904},
	{Name: "Leeds", Lat: 53.8008, Lng: -1.5491},
	{Name: "Liverpool", Lat: 53.4084, Lng: -2.9916},
	{Name: "Bristol", Lat: 51.4545, Lng: -2.5879},
	{Name: "Edinburgh", Lat: 55.9533, Lng: -3.1883},
	{Name: "Glasgow", Lat: 55.8642, Lng: -4.2518},
}

// Haversine returns the great-circle distance in kilometres between two
// points given in degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	phi1, phi2 := rad(lat1), rad(lat2)
	dphi, dlambda := rad(lat2-lat1), rad(lng2-lng1)

	a := math.Pow(math.Sin(dphi/2), 2) + math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dlambda/2), 2)
	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

// NearestCity adds nearest_city. Rows without coordinates get "". A row
// whose city already names a cluster city (ignoring case and surrounding
// space) keeps its own value; any other row is snapped to the closest
// cluster city.
func NearestCity(f *analysis.Frame, cityCol, latCol, lngCol string, cities []City) error {
	if len(cities) == 0 {
		return apperrors.NewAppValidationError("nearest city: no cluster cities")
	}
	names, err := f.Categorical(cityCol)
	if err != nil {
		return err
	}
	lats, err := f.Numeric(latCol)
	if err != nil {
		return err
	}
	lngs, err := f.Numeric(lngCol)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(cities))
	for _, c := range cities {
		known[strings.ToLower(strings.TrimSpace(c.Name))] = true
	}

	out := make([]string, f.Len())
	for i := range out {
		if math.IsNaN(lats[i]) || math.IsNaN(lngs[i]) {
			continue
		}
		if known[strings.ToLower(strings.TrimSpace(names[i]))] {
			out[i] = names[i]
			continue
		}
		out[i] = closest(lats[i], lngs[i], cities).Name
	}

	f.AddCategorical(ColNearestCity, out)
	return nil
}

// closest returns the first city at minimum distance.
func closest(lat, lng float64, cities []City) City {
	best, bestDist := cities[0], math.Inf(1)
	for _, c := range cities {
		if d := Haversine(lat, lng, c.Lat, c.Lng); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// LoadCities reads cluster cities from a table with city, lat and lng
// columns.
func LoadCities(path string) ([]City, error) {
	t, err := dataprocessing.ReadTable(path)
	if err != nil {
		return nil, err
	}
	return CitiesFromTable(t)
}

// CitiesFromTable converts a city, lat, lng table. Rows with a blank name
// or unparseable coordinates are an error.
func CitiesFromTable(t *dataprocessing.Table) ([]City, error) {
	nameCol, err := t.Column("city", "name")
	if err != nil {
		return nil, err
	}
	latCol, err := t.Column(dataprocessing.ColLat, dataprocessing.Aliases[dataprocessing.ColLat]...)
	if err != nil {
		return nil, err
	}
	lngCol, err := t.Column(dataprocessing.ColLng, dataprocessing.Aliases[dataprocessing.ColLng]...)
	if err != nil {
		return nil, err
	}

	cities := make([]City, 0, t.Len())
	for r := range t.Rows {
		name := strings.TrimSpace(t.Cell(r, nameCol))
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(t.Cell(r, latCol)), 64)
		lng, lngErr := strconv.ParseFloat(strings.TrimSpace(t.Cell(r, lngCol)), 64)
		if name == "" || latErr != nil || lngErr != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("%s row %d: invalid city", t.Name, r+1), nil)
		}
		cities = append(cities, City{Name: name, Lat: lat, Lng: lng})
	}
	if len(cities) == 0 {
		return nil, apperrors.NewAppValidationError(t.Name + ": no cities")
	}
	return cities, nil
}
