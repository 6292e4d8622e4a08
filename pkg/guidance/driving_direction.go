package guidance

import (
	"strings"

	"github.com/lintang-b-s/routefinder/pkg/costfunction"
	da "github.com/lintang-b-s/routefinder/pkg/datastructure"
	"github.com/lintang-b-s/routefinder/pkg/geo"
	"github.com/lintang-b-s/routefinder/pkg/util"
)

/*
DirectionBuilder. turns a path into street level driving directions.

a new step starts when the street name changes or when the road turns by 40° or more on an unnamed road.
the last step is always FINISH at the last vertex of the path.
*/
type DirectionBuilder struct {
	graph       *da.Graph
	cost        costfunction.CostFunction
	directions  []*Direction
	current     *Direction
	prevBearing float64
}

// NewDirectionBuilder. cost gives the travel time of an edge in seconds.
func NewDirectionBuilder(graph *da.Graph, cost costfunction.CostFunction) *DirectionBuilder {
	return &DirectionBuilder{
		graph:      graph,
		cost:       cost,
		directions: make([]*Direction, 0),
	}
}

func (db *DirectionBuilder) coordinate(v da.Index) geo.Coordinate {
	lat, lon := db.graph.GetVertexCoordinates(v)
	return geo.NewCoordinate(lat, lon)
}

// GetDrivingDirections. directions along path, path must come from a search on the builder's graph.
func (db *DirectionBuilder) GetDrivingDirections(path *da.Path) []Direction {
	db.directions = db.directions[:0]
	db.current = nil

	for _, eId := range path.GetEdges() {
		db.buildInstruction(db.graph.GetEdge(eId))
	}
	db.buildFinalInstruction(path.Target())

	directions := make([]Direction, len(db.directions))
	for i, d := range db.directions {
		d.Instruction = describe(d)
		_, d.TurnType = turnType(d.sign)
		d.Distance = util.RoundFloat(d.Distance, 2)
		d.TravelTime = util.RoundFloat(d.TravelTime, 2)
		d.Bearing = util.RoundFloat(d.Bearing, 2)
		if len(d.points) > 0 {
			d.Polyline = geo.PolylineFromCoords(d.points)
		}
		directions[i] = *d
	}
	return directions
}

func (db *DirectionBuilder) newStep(sign int, e *da.Edge, tail, head geo.Coordinate, bearing float64) {
	db.current = &Direction{
		StreetName: e.GetName(),
		Point:      tail,
		Bearing:    bearing,
		sign:       sign,
		points:     []geo.Coordinate{tail},
	}
	db.directions = append(db.directions, db.current)
	db.extend(e, head)
}

func (db *DirectionBuilder) extend(e *da.Edge, head geo.Coordinate) {
	db.current.Distance += e.GetLength()
	db.current.TravelTime += db.cost.GetWeight(e)
	db.current.EdgeIDs = append(db.current.EdgeIDs, e.GetEdgeId())
	db.current.points = append(db.current.points, head)
}

func (db *DirectionBuilder) buildInstruction(e *da.Edge) {
	tail := db.coordinate(e.GetTail())
	head := db.coordinate(e.GetHead())

	if db.current == nil {
		bearing := edgeBearing(tail, head)
		db.newStep(START, e, tail, head, bearing)
		db.prevBearing = bearing
		return
	}

	if tail == head {
		// zero length segment, no heading to compare
		db.extend(e, head)
		return
	}

	bearing := edgeBearing(tail, head)
	sign := getTurnDirection(db.prevBearing, bearing)
	db.prevBearing = bearing

	if db.isLeavingCurrentStreet(e.GetName(), sign) {
		db.newStep(sign, e, tail, head, bearing)
		return
	}
	db.extend(e, head)
}

func (db *DirectionBuilder) isLeavingCurrentStreet(name string, sign int) bool {
	if !isSameName(db.current.StreetName, name) {
		return true
	}
	if isEmpty(name) {
		return sign <= TURN_LEFT || sign == TURN_RIGHT || sign == TURN_SHARP_RIGHT
	}
	return sign == U_TURN
}

func (db *DirectionBuilder) buildFinalInstruction(target da.Index) {
	p := db.coordinate(target)
	finish := &Direction{
		Point: p,
		sign:  FINISH,
	}
	if db.current != nil {
		finish.StreetName = db.current.StreetName
	}
	db.directions = append(db.directions, finish)
}

func isSameName(name1, name2 string) bool {
	return strings.EqualFold(strings.TrimSpace(name1), strings.TrimSpace(name2))
}
