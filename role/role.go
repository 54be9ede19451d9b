package role

import (
	"fmt"
	"strings"
)

type Role string

const (
	Admin        Role = "admin"
	Doctor       Role = "doctor"
	Receptionist Role = "receptionist"
)

var all = []Role{Admin, Doctor, Receptionist}

// All returns every known role in a stable order.
func All() []Role {
	out := make([]Role, len(all))
	copy(out, all)
	return out
}

func (r Role) Valid() bool {
	for _, known := range all {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// Parse normalises a role name and rejects unknown values.
func Parse(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

type Module string

const (
	Users         Module = "users"
	Doctors       Module = "doctors"
	Patients      Module = "patients"
	Appointments  Module = "appointments"
	Slots         Module = "slots"
	Prescriptions Module = "prescriptions"
	FollowUps     Module = "followups"
	Wards         Module = "wards"
	Beds          Module = "beds"
	Bills         Module = "bills"
	Reports       Module = "reports"
)

type Action string

const (
	Create  Action = "create"
	View    Action = "view"
	Update  Action = "update"
	Delete  Action = "delete"
	Assign  Action = "assign"
	Payment Action = "payment"
)

type Privilege struct {
	Module Module
	Action Action
}

func (p Privilege) String() string { return string(p.Module) + ":" + string(p.Action) }

func grant(m Module, actions ...Action) []Privilege {
	out := make([]Privilege, 0, len(actions))
	for _, a := range actions {
		out = append(out, Privilege{Module: m, Action: a})
	}
	return out
}

func join(groups ...[]Privilege) map[Privilege]bool {
	set := make(map[Privilege]bool)
	for _, g := range groups {
		for _, p := range g {
			set[p] = true
		}
	}
	return set
}

// matrix lists what each non-admin role may do. Admin is allowed everything.
var matrix = map[Role]map[Privilege]bool{
	Doctor: join(
		grant(Doctors, View),
		grant(Patients, View, Update),
		grant(Appointments, View, Update),
		grant(Slots, View),
		grant(Prescriptions, Create, View, Update),
		grant(FollowUps, Create, View, Update),
		grant(Wards, View),
		grant(Beds, View),
		grant(Bills, View),
		grant(Reports, View),
	),
	Receptionist: join(
		grant(Doctors, View),
		grant(Patients, Create, View, Update),
		grant(Appointments, Create, View, Update),
		grant(Slots, View),
		grant(Prescriptions, View),
		grant(FollowUps, Create, View, Update),
		grant(Wards, View),
		grant(Beds, View, Assign),
		grant(Bills, Create, View, Update, Payment),
		grant(Reports, View),
	),
}

// Can reports whether the role holds the privilege for module/action.
func Can(r Role, m Module, a Action) bool {
	if r == Admin {
		return true
	}
	return matrix[r][Privilege{Module: m, Action: a}]
}

// Privileges lists the role's grants, used by /auth/me.
func Privileges(r Role) []string {
	if r == Admin {
		return []string{"*"}
	}
	out := make([]string, 0, len(matrix[r]))
	for p := range matrix[r] {
		out = append(out, p.String())
	}
	return out
}
