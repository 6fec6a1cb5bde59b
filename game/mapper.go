package game

// Mapper quantizes two joystick axes into a grid position. The X axis is
// inverted so that pushing the stick up selects the top row.
type Mapper struct {
	Range uint16
}

func NewMapper(axisRange uint16) Mapper {
	return Mapper{Range: axisRange}
}

func (mapper Mapper) bucket(value uint16) int {
	return int(value) * GridSize / int(mapper.Range)
}

// Map returns false when either sample is outside the sensor range.
func (mapper Mapper) Map(vrx, vry uint16) (Pos, bool) {
	if mapper.Range == 0 || vrx >= mapper.Range || vry >= mapper.Range {
		return Pos{}, false
	}

	pos := Pos{
		Row: GridSize - 1 - mapper.bucket(vrx),
		Col: mapper.bucket(vry),
	}
	return pos, pos.Valid()
}

// Center gives the axis samples in the middle of pos's buckets.
func (mapper Mapper) Center(pos Pos) (vrx, vry uint16) {
	width := int(mapper.Range) / GridSize
	xBucket := GridSize - 1 - pos.Row
	vrx = uint16(xBucket*int(mapper.Range)/GridSize + width/2)
	vry = uint16(pos.Col*int(mapper.Range)/GridSize + width/2)
	return vrx, vry
}
