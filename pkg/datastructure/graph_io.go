package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/routefinder/pkg"
)

/*
graph snapshot format (bzip2 compressed text):

	<numVertices> <numEdges>
	<osmId> <lat> <lon>                      (numVertices lines, in vertex index order)
	<tail> <head> <length> <hwType> <name>   (numEdges lines, in edge id order, name is go-quoted)
*/

const (
	maxSnapshotElements = 1 << 28
	// capacity reserved up front, the slices grow past it for larger graphs
	maxSnapshotPrealloc = 1 << 20
)

func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return g.Encode(f)
}

func (g *Graph) Encode(out io.Writer) error {
	bz, err := bzip2.NewWriter(out, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d\n", len(g.vertices), len(g.edges))

	for _, v := range g.vertices {
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)
		fmt.Fprintf(w, "%d %s %s\n", v.osmId, latF, lonF)
	}

	for _, e := range g.edges {
		lengthF := strconv.FormatFloat(e.length, 'f', -1, 64)
		fmt.Fprintf(w, "%d %d %s %d %s\n", e.tail, e.head, lengthF, e.hwType, strconv.Quote(e.name))
	}

	if err := w.Flush(); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeGraph(f)
}

func DecodeGraph(in io.Reader) (*Graph, error) {
	bz, err := bzip2.NewReader(in, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	sc := bufio.NewScanner(bz)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	nextLine := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return sc.Text(), nil
	}

	line, err := nextLine()
	if err != nil {
		return nil, err
	}
	var numVertices, numEdges int
	if _, err := fmt.Sscanf(line, "%d %d", &numVertices, &numEdges); err != nil {
		return nil, fmt.Errorf("invalid graph header %q: %w", line, err)
	}

	if numVertices < 0 || numVertices > maxSnapshotElements || numEdges < 0 || numEdges > maxSnapshotElements {
		return nil, fmt.Errorf("invalid graph header %q: counts must be in [0, %d]", line, maxSnapshotElements)
	}

	builder := NewGraphBuilderWithSize(min(numVertices, maxSnapshotPrealloc), min(numEdges, maxSnapshotPrealloc))
	for i := 0; i < numVertices; i++ {
		line, err = nextLine()
		if err != nil {
			return nil, err
		}
		parts := strings.Fields(line)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid vertex line %d: %q", i, line)
		}
		osmId, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, err
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, err
		}
		lon, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, err
		}
		if id := builder.AddVertex(osmId, lat, lon); int(id) != i {
			return nil, fmt.Errorf("duplicate osm id %d at vertex line %d", osmId, i)
		}
	}

	for i := 0; i < numEdges; i++ {
		line, err = nextLine()
		if err != nil {
			return nil, err
		}
		parts := strings.SplitN(line, " ", 5)
		if len(parts) != 5 {
			return nil, fmt.Errorf("invalid edge line %d: %q", i, line)
		}
		tail, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return nil, err
		}
		head, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return nil, err
		}
		length, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, err
		}
		hwType, err := strconv.ParseUint(parts[3], 10, 8)
		if err != nil {
			return nil, err
		}
		name, err := strconv.Unquote(parts[4])
		if err != nil {
			return nil, fmt.Errorf("invalid street name on edge line %d: %w", i, err)
		}
		builder.AddEdgeWithInfo(Index(tail), Index(head), length, pkg.OsmHighwayType(hwType), name)
	}

	return builder.Build()
}
