package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"branchscan/internal/location"
	"branchscan/lib/textutil"
)

const (
	BrandKFC       = "KFC"
	BrandMcDonalds = "McDonald's"
	BrandShaurma   = "Shaurma N1"
)

// Brands lists every brand in the order their tables are read.
var Brands = []string{BrandKFC, BrandMcDonalds, BrandShaurma}

// Sources holds the scraped table of every brand.
type Sources struct {
	KFC       location.Table
	McDonalds location.Table
	Shaurma   location.Table
}

// Table returns the table of a brand.
func (s Sources) Table(brand string) location.Table {
	switch brand {
	case BrandKFC:
		return s.KFC
	case BrandMcDonalds:
		return s.McDonalds
	case BrandShaurma:
		return s.Shaurma
	}
	panic(fmt.Sprintf("unknown brand %q", brand))
}

// LoadSources reads kfc.csv, mcdonalds.csv and shaurma.csv from dataDir.
func LoadSources(dataDir string) (Sources, error) {
	var sources Sources
	files := []struct {
		name  string
		table *location.Table
	}{
		{name: "kfc.csv", table: &sources.KFC},
		{name: "mcdonalds.csv", table: &sources.McDonalds},
		{name: "shaurma.csv", table: &sources.Shaurma},
	}
	for _, f := range files {
		table, err := location.ReadCSVFile(filepath.Join(dataDir, f.name))
		if err != nil {
			return Sources{}, fmt.Errorf("load %s: %w", f.name, err)
		}
		*f.table = table
	}
	return sources, nil
}

// Series is one set of bars of a chart, Values lines up with the chart's
// categories.
type Series struct {
	Label  string
	Values []float64
	Colors []string
}

// Dataset is everything needed to draw one chart.
type Dataset struct {
	// Name is the file name of the rendered chart without an extension.
	Name       string
	Title      string
	XLabel     string
	YLabel     string
	Categories []string
	Series     []Series
	Stacked    bool
	// ValueLabels, when present, is drawn above each bar of the first series.
	ValueLabels []string
}

// LocationCounts counts the locations of each brand, largest first.
func LocationCounts(src Sources) Dataset {
	type count struct {
		brand string
		n     int
	}
	counts := make([]count, len(Brands))
	for i, brand := range Brands {
		counts[i] = count{brand: brand, n: src.Table(brand).Len()}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].n > counts[j].n
	})

	ds := Dataset{
		Name:   "location_counts_by_brand",
		Title:  "Location Count by Brand",
		YLabel: "Number of locations",
	}
	series := Series{
		Label:  "Locations",
		Colors: []string{"#d62828", "#f77f00", "#003049"},
	}
	for _, c := range counts {
		ds.Categories = append(ds.Categories, c.brand)
		series.Values = append(series.Values, float64(c.n))
		ds.ValueLabels = append(ds.ValueLabels, fmt.Sprint(c.n))
	}
	ds.Series = []Series{series}
	return ds
}

// LateNightCoverage counts how many locations of each brand close before
// midnight, after midnight or never. Locations with unreadable hours are
// not counted.
func LateNightCoverage(src Sources) Dataset {
	counts := map[string]map[Bucket]int{}
	for _, brand := range Brands {
		counts[brand] = map[Bucket]int{}
	}

	for _, r := range src.KFC.Records {
		if bucket, ok := ClassifyKFC(r); ok {
			counts[BrandKFC][bucket]++
		}
	}
	for _, r := range src.McDonalds.Records {
		if bucket, ok := ClassifyRange(r["hours"]); ok {
			counts[BrandMcDonalds][bucket]++
		}
	}
	for _, r := range src.Shaurma.Records {
		if bucket, ok := ClassifyRange(r["dine_in"]); ok {
			counts[BrandShaurma][bucket]++
		}
	}

	colors := map[Bucket]string{
		BeforeMidnight: "#4a4e69",
		AfterMidnight:  "#9a8c98",
		AllDay:         "#c9ada7",
	}
	ds := Dataset{
		Name:       "late_night_coverage_by_brand",
		Title:      "Late-Night & 24/7 Coverage by Brand",
		YLabel:     "Number of locations",
		Categories: Brands,
		Stacked:    true,
	}
	for _, bucket := range Buckets {
		series := Series{
			Label:  string(bucket),
			Colors: []string{colors[bucket]},
		}
		for _, brand := range Brands {
			series.Values = append(series.Values, float64(counts[brand][bucket]))
		}
		ds.Series = append(ds.Series, series)
	}
	return ds
}

// McDonaldsServices counts the McDonald's locations that list a drive-thru
// or a McDelivery window at all.
func McDonaldsServices(mcd location.Table) Dataset {
	driveThru := 0
	delivery := 0
	for _, r := range mcd.Records {
		if r["drive_thru"] != "" {
			driveThru++
		}
		if r["mcdelivery"] != "" {
			delivery++
		}
	}

	values := []int{driveThru, delivery}
	labels := make([]string, len(values))
	for i, v := range values {
		pct := 0.0
		if mcd.Len() > 0 {
			pct = float64(v) / float64(mcd.Len()) * 100
		}
		labels[i] = fmt.Sprintf("%d (%.0f%%)", v, pct)
	}

	return Dataset{
		Name:       "mcdonalds_services_coverage",
		Title:      "McDonald's Convenience Services Coverage",
		YLabel:     "Locations with service",
		Categories: []string{"Drive-thru", "McDelivery"},
		Series: []Series{{
			Label:  "Locations",
			Values: []float64{float64(driveThru), float64(delivery)},
			Colors: []string{"#fcbf49", "#eae2b7"},
		}},
		ValueLabels: labels,
	}
}

const unknownLabel = "unknown"

// KFCOpeningHours counts KFC locations per opening time, ordered by label.
func KFCOpeningHours(kfc location.Table) Dataset {
	counts := map[string]int{}
	for _, value := range kfc.Column("openingHour") {
		label := strings.TrimSpace(value)
		if label == "" {
			label = unknownLabel
		}
		counts[label]++
	}

	ds := Dataset{
		Name:   "kfc_opening_hours",
		Title:  "KFC Opening Hour Distribution",
		XLabel: "Opening hour",
		YLabel: "Number of locations",
	}
	for label := range counts {
		ds.Categories = append(ds.Categories, label)
	}
	sort.Strings(ds.Categories)

	series := Series{Label: "Locations", Colors: []string{"#457b9d"}}
	for _, label := range ds.Categories {
		series.Values = append(series.Values, float64(counts[label]))
		ds.ValueLabels = append(ds.ValueLabels, fmt.Sprint(counts[label]))
	}
	ds.Series = []Series{series}
	return ds
}

var regionFields = []string{
	"city",
	"city.name",
	"region",
	"region.name",
	"district",
	"district.name",
	"cityName",
	"regionName",
}

const (
	unknownRegion = "Unknown"
	// spellings at least this similar are counted as one region
	regionSimilarity = 0.92
	maxRegions       = 10
)

// Region guesses the region of a record from its region-like fields, then
// from the first part of its address.
func Region(r location.Record) string {
	if region := strings.TrimSpace(r.Get(regionFields...)); region != "" {
		return region
	}
	first, _, _ := strings.Cut(r["address"], ",")
	if first = strings.TrimSpace(first); first != "" {
		return first
	}
	return unknownRegion
}

var brandColors = map[string]string{
	BrandKFC:       "#d62828",
	BrandMcDonalds: "#f77f00",
	BrandShaurma:   "#003049",
}

// RegionalDistribution counts each brand's locations in the most common
// regions. Spellings of a region that differ slightly are merged into the one
// seen first.
func RegionalDistribution(src Sources) Dataset {
	canon := textutil.NewCanonicalizer(regionSimilarity)

	var order []string
	totals := map[string]int{}
	counts := map[string]map[string]int{}
	for _, brand := range Brands {
		counts[brand] = map[string]int{}
		for _, r := range src.Table(brand).Records {
			region := canon.Canonical(Region(r))
			if _, seen := totals[region]; !seen {
				order = append(order, region)
			}
			totals[region]++
			counts[brand][region]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})
	if len(order) > maxRegions {
		order = order[:maxRegions]
	}

	ds := Dataset{
		Name:       "regional_distribution",
		Title:      "Regional Distribution by Brand",
		XLabel:     "Region",
		YLabel:     "Number of locations",
		Categories: order,
	}
	for _, brand := range Brands {
		series := Series{Label: brand, Colors: []string{brandColors[brand]}}
		for _, region := range order {
			series.Values = append(series.Values, float64(counts[brand][region]))
		}
		ds.Series = append(ds.Series, series)
	}
	return ds
}

// Datasets builds every chart dataset in rendering order.
func Datasets(src Sources) []Dataset {
	return []Dataset{
		LocationCounts(src),
		LateNightCoverage(src),
		McDonaldsServices(src.McDonalds),
		KFCOpeningHours(src.KFC),
		RegionalDistribution(src),
	}
}
