package controllers

import (
	"testing"

	"MediTrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_TypedDocumentsBecomeGenericJSON(t *testing.T) {
	slots := &models.AvailableSlots{Date: "2030-01-07", Slots: []string{"09:00", "09:30"}}
	out, ok := payload(slots).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2030-01-07", out["date"])
	assert.Equal(t, []interface{}{"09:00", "09:30"}, out["slots"])

	list, ok := payload([]models.Ward{{Name: "General A"}}).([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "General A", list[0].(map[string]interface{})["name"])
}

func TestPayload_PassThroughAndEmptyLists(t *testing.T) {
	assert.Equal(t, "Bill deleted", payload("Bill deleted"))
	assert.Equal(t, []string{"a"}, payload([]string{"a"}))

	var none []models.Patient
	assert.Equal(t, []interface{}{}, payload(none))
}
