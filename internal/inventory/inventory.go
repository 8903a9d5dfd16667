package inventory

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	herrors "github.com/helpdesk/helpdesk/internal/errors"
)

// Header is the column layout of the inventory CSV
var Header = []string{"ID", "Local", "OS", "Memoria_GB", "CPU_Cores", "Status"}

var sampleRows = [][]string{
	{"101", "Financeiro", "Win10", "8", "4", "Online"},
	{"102", "Vendas", "Win11", "16", "6", "Offline"},
	{"103", "Desenvolvimento", "Linux", "32", "8", "Online"},
}

// Asset is one inventoried machine
type Asset struct {
	ID       int
	Location string
	OS       string
	MemoryGB float64
	CPUCores int
	Status   string
}

// OSCount is the number of machines running an OS
type OSCount struct {
	OS    string
	Total int
}

// OSMemory is the mean memory of machines running an OS
type OSMemory struct {
	OS         string
	MeanMemory float64
}

// Summary aggregates the inventory per operating system
type Summary struct {
	Counts []OSCount  // descending by total, ties by OS name
	Memory []OSMemory // ascending by OS name
}

// EnsureCSV writes the sample inventory when path does not exist.
func EnsureCSV(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.WriteAll(sampleRows); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// LoadCSV reads assets, locating columns by header name.
func LoadCSV(path string) ([]Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, herrors.Wrap(err, herrors.CategoryParse, "inventory", "read csv", path)
	}
	if len(records) == 0 {
		return nil, herrors.New(herrors.CategoryParse, "inventory", "read csv", path+": empty file")
	}

	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range Header {
		if _, ok := idx[col]; !ok {
			return nil, herrors.New(herrors.CategoryParse, "inventory", "read csv",
				fmt.Sprintf("%s: missing column %s", path, col))
		}
	}

	assets := make([]Asset, 0, len(records)-1)
	for n, rec := range records[1:] {
		row := n + 2
		id, err := strconv.Atoi(rec[idx["ID"]])
		if err != nil {
			return nil, parseErr(path, row, "ID", err)
		}
		mem, err := strconv.ParseFloat(rec[idx["Memoria_GB"]], 64)
		if err != nil {
			return nil, parseErr(path, row, "Memoria_GB", err)
		}
		cores, err := strconv.Atoi(rec[idx["CPU_Cores"]])
		if err != nil {
			return nil, parseErr(path, row, "CPU_Cores", err)
		}
		assets = append(assets, Asset{
			ID:       id,
			Location: rec[idx["Local"]],
			OS:       rec[idx["OS"]],
			MemoryGB: mem,
			CPUCores: cores,
			Status:   rec[idx["Status"]],
		})
	}
	return assets, nil
}

func parseErr(path string, row int, col string, err error) error {
	return herrors.Wrap(err, herrors.CategoryParse, "inventory", "read csv",
		fmt.Sprintf("%s row %d column %s", path, row, col))
}

// Summarize counts machines and averages memory per OS
func Summarize(assets []Asset) Summary {
	counts := make(map[string]int)
	memTotal := make(map[string]float64)
	for _, a := range assets {
		counts[a.OS]++
		memTotal[a.OS] += a.MemoryGB
	}

	var s Summary
	for name, n := range counts {
		s.Counts = append(s.Counts, OSCount{OS: name, Total: n})
		s.Memory = append(s.Memory, OSMemory{OS: name, MeanMemory: memTotal[name] / float64(n)})
	}
	sort.Slice(s.Counts, func(i, j int) bool {
		if s.Counts[i].Total != s.Counts[j].Total {
			return s.Counts[i].Total > s.Counts[j].Total
		}
		return s.Counts[i].OS < s.Counts[j].OS
	})
	sort.Slice(s.Memory, func(i, j int) bool {
		return s.Memory[i].OS < s.Memory[j].OS
	})
	return s
}
