package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	r, err := Parse(" Doctor ")
	require.NoError(t, err)
	assert.Equal(t, Doctor, r)

	_, err = Parse("nurse")
	assert.Error(t, err)
}

func TestAdminCanDoEverything(t *testing.T) {
	assert.True(t, Can(Admin, Users, Delete))
	assert.True(t, Can(Admin, Bills, Payment))
	assert.Equal(t, []string{"*"}, Privileges(Admin))
}

func TestMatrix(t *testing.T) {
	cases := []struct {
		role   Role
		module Module
		action Action
		want   bool
	}{
		{Doctor, Prescriptions, Create, true},
		{Doctor, Appointments, Create, false},
		{Doctor, Bills, Payment, false},
		{Doctor, Users, View, false},
		{Receptionist, Appointments, Create, true},
		{Receptionist, Beds, Assign, true},
		{Receptionist, Bills, Payment, true},
		{Receptionist, Prescriptions, Create, false},
		{Receptionist, Wards, Create, false},
		{Role("guest"), Patients, View, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Can(tc.role, tc.module, tc.action), "%s %s:%s", tc.role, tc.module, tc.action)
	}
}

func TestPrivilegesListsGrants(t *testing.T) {
	assert.Contains(t, Privileges(Receptionist), "beds:assign")
	assert.NotContains(t, Privileges(Doctor), "beds:assign")
}
