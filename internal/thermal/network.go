package thermal

import (
	"fmt"
	"math"
)

// Physical constants shared by the builder and the solvers.
const (
	// AirHeatCapacity is the volumetric heat capacity of dry air near room
	// temperature, J/(m³·K).
	AirHeatCapacity = 1188.0

	// EnvelopeHeatCapacity is the effective areal heat capacity of the
	// envelope lining engaged on the timescale of a day, J/(m²·K).
	EnvelopeHeatCapacity = 5000.0

	groundConductivity        = 1.5 // W/(m·K), clay/silt soil
	groundEquivalentThickness = 4.8 // m, floor construction plus soil films
)

// Defaults applied by CreateSimpleStructure and zero-valued StructureParams.
const (
	DefaultWallUValue      = 0.8    // uninsulated cavity wall
	DefaultWindowUValue    = 4.8    // single glazing
	DefaultRoofUValue      = 0.2833 // insulated loft
	DefaultACH             = 0.15   // background infiltration
	DefaultSolarGain       = 700.0  // W, solar plus incidental gains
	DefaultFlowTemperature = 55.0   // °C
	DefaultBoilerPower     = 10_000.0
)

// Edge is one directed (source, destination, Link) entry in the topology.
type Edge struct {
	U, V BuildingElement
	Link Link
}

// HeatNetwork is an arena of thermal nodes keyed by BuildingElement plus an
// append-only edge list. Topology is fixed once the construction phases have
// run; node attributes stay mutable scratch state for the calculators.
type HeatNetwork struct {
	nodes [elementCount]*Node
	edges []Edge

	hasStructure bool
	hasHeating   bool
}

// Node returns the node for the given element, or nil if absent.
func (n *HeatNetwork) Node(e BuildingElement) *Node {
	if !e.Valid() {
		return nil
	}
	return n.nodes[e]
}

// Contains reports whether the element has a node in this network.
func (n *HeatNetwork) Contains(e BuildingElement) bool { return n.Node(e) != nil }

// Edges returns the edge list. Callers must not append to it.
func (n *HeatNetwork) Edges() []Edge { return n.edges }

func (n *HeatNetwork) addNode(e BuildingElement, node Node) {
	if n.nodes[e] != nil {
		panic(fmt.Sprintf("thermal: duplicate node %s", e))
	}
	copied := node
	n.nodes[e] = &copied
}

func (n *HeatNetwork) addEdge(u, v BuildingElement, link Link) {
	if u == v {
		panic(fmt.Sprintf("thermal: self-edge on %s", u))
	}
	if n.nodes[u] == nil || n.nodes[v] == nil {
		panic(fmt.Sprintf("thermal: edge %s->%s references a missing node", u, v))
	}
	n.edges = append(n.edges, Edge{U: u, V: v, Link: link})
}

// resetEnergy zeroes every EnergyChange accumulator. The calculators call it
// at the start of each pass and each solver step.
func (n *HeatNetwork) resetEnergy() {
	for _, node := range n.nodes {
		if node != nil {
			node.EnergyChange = 0
		}
	}
}

// Structured is satisfied by any network that has completed the structure
// phase. Only types in this package can implement it.
type Structured interface {
	network() *HeatNetwork
}

// OutdoorNetwork is a network holding only the ExternalAir reference node.
type OutdoorNetwork struct{ net *HeatNetwork }

// StructuredNetwork is a network whose building fabric has been added.
type StructuredNetwork struct{ net *HeatNetwork }

// CompleteNetwork is a network with fabric and a heating system.
type CompleteNetwork struct{ net *HeatNetwork }

func (s *StructuredNetwork) network() *HeatNetwork { return s.net }
func (c *CompleteNetwork) network() *HeatNetwork   { return c.net }

// Network exposes the underlying arena for inspection.
func (c *CompleteNetwork) Network() *HeatNetwork { return c.net }

// InitialiseOutdoors starts the construction sequence with a network that
// contains only ExternalAir, an infinite-mass reference node.
func InitialiseOutdoors() *OutdoorNetwork {
	net := &HeatNetwork{}
	net.addNode(ExternalAir, Node{ThermalMass: math.Inf(1)})
	return &OutdoorNetwork{net: net}
}

// StructureParams describes a single-zone cuboid fabric. Zero-valued U-value,
// ACH and gain fields fall back to the package defaults; geometry fields are
// mandatory.
type StructureParams struct {
	WallWidth  float64 // m
	WallHeight float64 // m
	WindowArea float64 // m², total glazing, split across orientations
	FloorArea  float64 // m²
	RoofArea   float64 // m²
	AirVolume  float64 // m³, 0 disables the infiltration link

	WallUValue   float64
	WindowUValue float64
	RoofUValue   float64
	ACH          float64
	SolarGain    float64 // W, 0 disables the gains link
}

func (p *StructureParams) applyDefaults() {
	if p.WallUValue == 0 {
		p.WallUValue = DefaultWallUValue
	}
	if p.WindowUValue == 0 {
		p.WindowUValue = DefaultWindowUValue
	}
	if p.RoofUValue == 0 {
		p.RoofUValue = DefaultRoofUValue
	}
	if p.ACH == 0 {
		p.ACH = DefaultACH
	}
}

func (p *StructureParams) validate() error {
	if p.WallWidth <= 0 {
		return fmt.Errorf("%w: wall width %v", ErrInvalidGeometry, p.WallWidth)
	}
	if p.WallHeight <= 0 {
		return fmt.Errorf("%w: wall height %v", ErrInvalidGeometry, p.WallHeight)
	}
	if p.WindowArea < 0 {
		return fmt.Errorf("%w: window area %v", ErrInvalidGeometry, p.WindowArea)
	}
	if p.WindowArea >= p.WallWidth*p.WallHeight {
		return fmt.Errorf("%w: window area %v exceeds wall area %v",
			ErrInvalidGeometry, p.WindowArea, p.WallWidth*p.WallHeight)
	}
	if p.FloorArea <= 0 {
		return fmt.Errorf("%w: floor area %v", ErrInvalidGeometry, p.FloorArea)
	}
	if p.RoofArea <= 0 {
		return fmt.Errorf("%w: roof area %v", ErrInvalidGeometry, p.RoofArea)
	}
	if p.AirVolume < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidAirVolume, p.AirVolume)
	}
	if p.SolarGain < 0 {
		return fmt.Errorf("%w: solar gain %v", ErrInvalidPower, p.SolarGain)
	}
	return nil
}

// GroundUValue derives a ground-coupled floor U-value from the exposed
// perimeter and floor area, after ISO 13370's characteristic-dimension
// formulation for slab-on-ground floors.
func GroundUValue(perimeter, area float64) (float64, error) {
	if perimeter <= 0 {
		return 0, fmt.Errorf("%w: perimeter %v", ErrInvalidGeometry, perimeter)
	}
	if area <= 0 {
		return 0, fmt.Errorf("%w: floor area %v", ErrInvalidGeometry, area)
	}
	b := 2 * area / perimeter
	u := 2 * groundConductivity / (math.Pi*b + groundEquivalentThickness) *
		math.Log(math.Pi*b/groundEquivalentThickness+1)
	return u, nil
}

// AddStructure runs the structure phase: InternalAir, four walls, the north
// and south glazing, Floor and Roof, each wired to InternalAir with a
// ConductiveLink, plus the infiltration and gains links when enabled.
// Running the phase twice on one underlying network is a caller bug and
// panics; non-physical geometry returns an error.
func (o *OutdoorNetwork) AddStructure(params StructureParams) (*StructuredNetwork, error) {
	net := o.net
	if net.hasStructure {
		panic("thermal: structure already added to network")
	}
	params.applyDefaults()
	if err := params.validate(); err != nil {
		return nil, err
	}

	floorU, err := GroundUValue(4*params.WallWidth, params.FloorArea)
	if err != nil {
		return nil, err
	}

	internalMass := math.Inf(1)
	if params.AirVolume > 0 {
		internalMass = params.AirVolume * AirHeatCapacity
	}
	net.addNode(InternalAir, Node{ThermalMass: internalMass})

	wallArea := params.WallWidth*params.WallHeight - params.WindowArea
	for _, wall := range []BuildingElement{WallNorth, WallEast, WallSouth, WallWest} {
		net.addNode(wall, Node{ThermalMass: wallArea * EnvelopeHeatCapacity})
		net.addEdge(InternalAir, wall, ConductiveLink{
			InterfaceArea: wallArea,
			HeatTransfer:  params.WallUValue,
		})
	}

	if params.WindowArea > 0 {
		// Glazing splits evenly between the two principal orientations.
		paneArea := params.WindowArea / 2
		for _, window := range []BuildingElement{WindowsNorth, WindowsSouth} {
			net.addNode(window, Node{ThermalMass: paneArea * EnvelopeHeatCapacity})
			net.addEdge(InternalAir, window, ConductiveLink{
				InterfaceArea: paneArea,
				HeatTransfer:  params.WindowUValue,
			})
		}
	}

	net.addNode(Floor, Node{ThermalMass: params.FloorArea * EnvelopeHeatCapacity})
	net.addEdge(InternalAir, Floor, ConductiveLink{
		InterfaceArea: params.FloorArea,
		HeatTransfer:  floorU,
	})

	net.addNode(Roof, Node{ThermalMass: params.RoofArea * EnvelopeHeatCapacity})
	net.addEdge(InternalAir, Roof, ConductiveLink{
		InterfaceArea: params.RoofArea,
		HeatTransfer:  params.RoofUValue,
	})

	if params.AirVolume > 0 {
		net.addEdge(InternalAir, ExternalAir, ConvectiveLink{ACH: params.ACH})
	}
	if params.SolarGain > 0 {
		net.addEdge(ExternalAir, InternalAir, RadiativeLink{Power: params.SolarGain})
	}

	net.hasStructure = true
	return &StructuredNetwork{net: net}, nil
}

// AddHeatingSystem runs the final phase: a HeatingSystem node at the flow
// temperature, wired to InternalAir with a ThermalRadiativeLink. Adding a
// second heating system to one underlying network is a caller bug and panics.
func (s *StructuredNetwork) AddHeatingSystem(flowTemp, deltaT float64) (*CompleteNetwork, error) {
	net := s.net
	if net.hasHeating {
		panic("thermal: heating system already added to network")
	}
	if deltaT <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeltaT, deltaT)
	}

	net.addNode(HeatingSystem, Node{Temperature: flowTemp, ThermalMass: math.Inf(1)})
	net.addEdge(HeatingSystem, InternalAir, ThermalRadiativeLink{
		Power:  DefaultBoilerPower,
		DeltaT: deltaT,
	})

	net.hasHeating = true
	return &CompleteNetwork{net: net}, nil
}

// CreateSimpleStructure composes the three construction phases for a
// single-zone cuboid with the default fabric parameters. Used by sizing and
// test code.
func CreateSimpleStructure(wallWidth, wallHeight, windowArea, floorArea, roofArea, airVolume float64) (*CompleteNetwork, error) {
	structured, err := InitialiseOutdoors().AddStructure(StructureParams{
		WallWidth:  wallWidth,
		WallHeight: wallHeight,
		WindowArea: windowArea,
		FloorArea:  floorArea,
		RoofArea:   roofArea,
		AirVolume:  airVolume,
		SolarGain:  DefaultSolarGain,
	})
	if err != nil {
		return nil, err
	}
	return structured.AddHeatingSystem(DefaultFlowTemperature, DefaultRadiatorDeltaT)
}
