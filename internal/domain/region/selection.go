package region

// Selection is the address path picked so far. A non-empty child id implies
// every ancestor id is non-empty; Set keeps that true by clearing descendants.
type Selection struct {
	ProvinceID   string `json:"provinceId,omitempty"`
	ProvinceName string `json:"provinceName,omitempty"`
	RegencyID    string `json:"regencyId,omitempty"`
	RegencyName  string `json:"regencyName,omitempty"`
	DistrictID   string `json:"districtId,omitempty"`
	DistrictName string `json:"districtName,omitempty"`
	VillageID    string `json:"villageId,omitempty"`
	VillageName  string `json:"villageName,omitempty"`
}

func (s *Selection) fields(level Level) (id, name *string) {
	switch level {
	case LevelProvince:
		return &s.ProvinceID, &s.ProvinceName
	case LevelRegency:
		return &s.RegencyID, &s.RegencyName
	case LevelDistrict:
		return &s.DistrictID, &s.DistrictName
	case LevelVillage:
		return &s.VillageID, &s.VillageName
	}
	return nil, nil
}

// At returns the node selected at level, empty if none.
func (s Selection) At(level Level) Node {
	id, name := s.fields(level)
	if id == nil {
		return Node{}
	}
	return Node{ID: *id, Name: *name}
}

// Set records node at level and clears every level below it.
func (s *Selection) Set(level Level, node Node) {
	id, name := s.fields(level)
	if id == nil {
		return
	}
	*id, *name = node.ID, node.Name
	s.ClearBelow(level)
}

// ClearBelow empties every level strictly below level.
func (s *Selection) ClearBelow(level Level) {
	for l := level + 1; l <= LevelVillage; l++ {
		id, name := s.fields(l)
		*id, *name = "", ""
	}
}

// IsEmpty reports whether nothing has been picked.
func (s Selection) IsEmpty() bool {
	return s.ProvinceID == "" && s.ProvinceName == ""
}

// IsComplete reports whether all four names are present.
func (s Selection) IsComplete() bool {
	return s.ProvinceName != "" && s.RegencyName != "" && s.DistrictName != "" && s.VillageName != ""
}

// IsConsistent reports whether every picked level has all ancestors picked.
func (s Selection) IsConsistent() bool {
	seenEmpty := false
	for _, l := range Levels {
		if s.At(l).ID == "" {
			seenEmpty = true
			continue
		}
		if seenEmpty {
			return false
		}
	}
	return true
}
