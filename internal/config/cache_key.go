package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ScheduleDocumentKey returns the cache key for a college's canonical
// schedule document for one term.
func (r *CacheKeyStruct) ScheduleDocumentKey(collegeID, termCode string) string {
	return fmt.Sprintf("schedule:%s:%s:document", collegeID, termCode)
}

// ScheduleFiltersKey returns the cache key for a college's unique
// filter values for one term.
func (r *CacheKeyStruct) ScheduleFiltersKey(collegeID, termCode string) string {
	return fmt.Sprintf("schedule:%s:%s:filters", collegeID, termCode)
}

var CacheKey = NewCacheKeyStruct()
