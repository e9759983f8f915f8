package transfer

// referenceIDMap maps original (exporting-system) lookup ids to local ids,
// one map per category. An instance lives only for the duration of a single
// import call and is passed explicitly through the import pipeline; there is
// no cross-call identity cache, so concurrent imports never see each other's
// mappings.
type referenceIDMap struct {
	projects        map[int64]int64
	departments     map[int64]int64
	workTypes       map[int64]int64
	processStatuses map[int64]int64
	todoCategories  map[int64]int64
}

func newReferenceIDMap() *referenceIDMap {
	return &referenceIDMap{
		projects:        make(map[int64]int64),
		departments:     make(map[int64]int64),
		workTypes:       make(map[int64]int64),
		processStatuses: make(map[int64]int64),
		todoCategories:  make(map[int64]int64),
	}
}
