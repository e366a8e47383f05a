// Package gen writes synthetic measurement files in the "name;temp" format.
package gen

import (
	"bufio"
	"io"
	"math"
	"math/rand/v2"

	"github.com/miku/1brc-chunked/internal/measure"
)

// Station is a weather station with its mean temperature in degrees.
type Station struct {
	Name string
	Mean float64
}

// Stations is a sample of stations with their long-term mean temperature.
var Stations = []Station{
	{"Abha", 18.0},
	{"Abidjan", 26.0},
	{"Accra", 26.4},
	{"Addis Ababa", 16.0},
	{"Adelaide", 17.3},
	{"Albuquerque", 14.0},
	{"Alexandria", 20.0},
	{"Amsterdam", 10.2},
	{"Anchorage", 2.8},
	{"Athens", 19.2},
	{"Baghdad", 22.77},
	{"Bangkok", 28.6},
	{"Barcelona", 18.2},
	{"Bergen", 7.7},
	{"Berlin", 10.3},
	{"Bogotá", 13.4},
	{"Bulawayo", 18.9},
	{"Cairo", 21.4},
	{"Dakar", 24.0},
	{"Dodoma", 22.7},
	{"Dubai", 26.9},
	{"Hamburg", 9.7},
	{"Hanoi", 23.6},
	{"Istanbul", 13.9},
	{"Kyiv", 8.4},
	{"Leipzig", 9.6},
	{"Lodwar", 29.3},
	{"Moscow", 5.8},
	{"Nuuk", -1.4},
	{"Ouarzazate", 18.9},
	{"Reykjavík", 4.3},
	{"São Paulo", 19.7},
	{"Tamale", 27.9},
	{"Tokyo", 15.4},
	{"Vladivostok", 4.9},
	{"Whitehorse", -0.1},
	{"Yakutsk", -8.8},
	{"Zürich", 9.3},
}

// Generator produces random records for a set of stations.
type Generator struct {
	rand     *rand.Rand
	stations []Station
	buf      []byte
}

// New returns a generator over stations, seeded for reproducible output.
func New(stations []Station, seed uint64) *Generator {
	return &Generator{
		rand:     rand.New(rand.NewPCG(seed, seed)),
		stations: stations,
	}
}

// Next returns a random station name and a temperature drawn around the
// station's mean, limited to [-99.9, 99.9].
func (g *Generator) Next() (string, measure.Temp) {
	s := g.stations[g.rand.IntN(len(g.stations))]
	v := math.Round((s.Mean + g.rand.NormFloat64()*10) * 10)
	v = max(-999, min(999, v))
	return s.Name, measure.Temp(v)
}

// WriteLine writes a single record to w.
func (g *Generator) WriteLine(w io.Writer) error {
	name, t := g.Next()
	g.buf = append(g.buf[:0], name...)
	g.buf = append(g.buf, ';')
	g.buf = t.Append(g.buf)
	g.buf = append(g.buf, '\n')
	_, err := w.Write(g.buf)
	return err
}

// Write writes n records to w.
func Write(w io.Writer, n int64, seed uint64) error {
	var (
		g  = New(Stations, seed)
		bw = bufio.NewWriterSize(w, 1<<20)
	)
	for i := int64(0); i < n; i++ {
		if err := g.WriteLine(bw); err != nil {
			return err
		}
	}
	return bw.Flush()
}
