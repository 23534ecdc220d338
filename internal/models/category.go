package models

// Category identifies the model-store category an item belongs to.
type Category string

// Model categories the engine recognizes. The store may contain others;
// anything not listed here is still monitored but matches no special rule.
const (
	CategoryCableRoute          Category = "cable_route"
	CategoryCableRouteFitting   Category = "cable_route_fitting"
	CategoryConduit             Category = "conduit"
	CategoryConduitFitting      Category = "conduit_fitting"
	CategoryElectricalEquipment Category = "electrical_equipment"
	CategoryElectricalFixture   Category = "electrical_fixture"
	CategoryLightingFixture     Category = "lighting_fixture"

	CategoryStructuralFraming    Category = "structural_framing"
	CategoryStructuralColumn     Category = "structural_column"
	CategoryStructuralTruss      Category = "structural_truss"
	CategoryStructuralStiffener  Category = "structural_stiffener"
	CategoryStructuralFoundation Category = "structural_foundation"

	CategoryWall                Category = "wall"
	CategoryDoor                Category = "door"
	CategoryWindow              Category = "window"
	CategoryGeneric             Category = "generic"
	CategoryMechanicalEquipment Category = "mechanical_equipment"

	CategoryDuctCurve     Category = "duct_curve"
	CategoryDuctFitting   Category = "duct_fitting"
	CategoryDuctAccessory Category = "duct_accessory"
	CategoryFlexDuct      Category = "flex_duct"
	CategoryPipeCurve     Category = "pipe_curve"
	CategoryPipeFitting   Category = "pipe_fitting"
	CategoryPipeAccessory Category = "pipe_accessory"
	CategoryFlexPipe      Category = "flex_pipe"

	// Never transferred directly into an output artifact.
	CategoryView            Category = "view"
	CategorySheet           Category = "sheet"
	CategorySchedule        Category = "schedule"
	CategoryGrid            Category = "grid"
	CategoryLevel           Category = "level"
	CategoryReferencePlane  Category = "reference_plane"
	CategoryReferenceLine   Category = "reference_line"
	CategoryRoom            Category = "room"
	CategoryArea            Category = "area"
	CategoryRoomSeparation  Category = "room_separation"
	CategoryAreaSeparation  Category = "area_separation"
	CategoryCamera          Category = "camera"
	CategoryScopeBox        Category = "scope_box"
	CategoryMatchline       Category = "matchline"
	CategoryCurtainWallGrid Category = "curtain_wall_grid"

	// Aggregate systems are transferred via their member items, never directly.
	CategoryDuctSystem   Category = "duct_system"
	CategoryPipingSystem Category = "piping_system"
)

// nonTransferable lists categories that are dropped from bulk transfer
// during pre-filtering.
var nonTransferable = map[Category]bool{
	CategoryView:            true,
	CategorySheet:           true,
	CategorySchedule:        true,
	CategoryGrid:            true,
	CategoryLevel:           true,
	CategoryReferencePlane:  true,
	CategoryReferenceLine:   true,
	CategoryRoom:            true,
	CategoryArea:            true,
	CategoryRoomSeparation:  true,
	CategoryAreaSeparation:  true,
	CategoryCamera:          true,
	CategoryScopeBox:        true,
	CategoryMatchline:       true,
	CategoryCurtainWallGrid: true,
}

// aggregateSystem lists categories whose contents travel with their member
// items and must not be copied directly.
var aggregateSystem = map[Category]bool{
	CategoryDuctSystem:   true,
	CategoryPipingSystem: true,
}

// systemBearing lists categories whose items declare a system name that
// participates in pattern matching.
var systemBearing = map[Category]bool{
	CategoryDuctCurve:     true,
	CategoryDuctFitting:   true,
	CategoryDuctAccessory: true,
	CategoryFlexDuct:      true,
	CategoryPipeCurve:     true,
	CategoryPipeFitting:   true,
	CategoryPipeAccessory: true,
	CategoryFlexPipe:      true,
}

// IsNonTransferable reports whether items of this category are excluded
// from bulk transfer.
func (c Category) IsNonTransferable() bool { return nonTransferable[c] }

// IsAggregateSystem reports whether this category is a multi-part system
// that is transferred via its members.
func (c Category) IsAggregateSystem() bool { return aggregateSystem[c] }

// HasSystemName reports whether items of this category carry a declared
// system name usable as a match candidate.
func (c Category) HasSystemName() bool { return systemBearing[c] }
