package divera

import (
	"encoding/json"
	"strconv"
)

// Snapshot is one full, immutable state document pulled from the remote
// service. It is decoded once, never mutated, and replaced wholesale by the
// next successful pull.
type Snapshot struct {
	Data Data `json:"data"`
}

// Data is the payload body of a Snapshot.
type Data struct {
	User       User            `json:"user"`
	Status     UserStatus      `json:"status"`
	Cluster    Cluster         `json:"cluster"`
	Events     Category[Event] `json:"events"`
	Alarm      Category[Alarm] `json:"alarm"`
	News       Category[News]  `json:"news"`
	UCR        map[string]UCR  `json:"ucr"`
	UCRActive  int64           `json:"ucr_active"`
	UCRDefault int64           `json:"ucr_default"`
}

// Category holds one entity category: items keyed by their stringified
// numeric id plus an explicit newest-first ordering of those ids.
type Category[T any] struct {
	Items   map[string]T `json:"items"`
	Sorting []int64      `json:"sorting"`
}

// Latest returns the item whose id leads the sorting list. An id present in
// the sorting list but absent from the items map degrades to the zero value
// with ok still true; an empty sorting list returns ok false.
func (c Category[T]) Latest() (item T, ok bool) {
	if len(c.Sorting) == 0 {
		return item, false
	}
	return c.Get(c.Sorting[0]), true
}

// Get returns the item for the given id, or the zero value when missing.
func (c Category[T]) Get(id int64) T {
	return c.Items[itoa(id)]
}

// User identifies the account holder.
type User struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	AccessKey string `json:"accesskey"`
}

// UserStatus is the account's current availability state.
type UserStatus struct {
	StatusID      int64 `json:"status_id"`
	StatusSetDate int64 `json:"status_set_date"`
}

// Cluster is the organizational unit the polled account-context belongs to.
type Cluster struct {
	Status        map[string]StatusState `json:"status"`
	StatusSorting []int64                `json:"statussorting"`
	Vehicle       map[string]Vehicle     `json:"vehicle"`
	Group         map[string]Group       `json:"group"`
	VersionID     int64                  `json:"version_id"`
}

// StatusState is one named availability state of a cluster.
type StatusState struct {
	Name string `json:"name"`
}

// Group is a responding group inside the polled cluster.
type Group struct {
	Name string `json:"name"`
}

// Vehicle carries per-vehicle telemetry and static descriptors.
// FMSStatusID is a pointer so a missing field can be told apart from 0.
type Vehicle struct {
	Fullname      string  `json:"fullname"`
	Shortname     string  `json:"shortname"`
	Name          string  `json:"name"`
	FMSStatusID   *int64  `json:"fmsstatus_id"`
	FMSStatusNote string  `json:"fmsstatus_note"`
	FMSStatusTS   int64   `json:"fmsstatus_ts"`
	Latitude      float64 `json:"lat"`
	Longitude     float64 `json:"lng"`
	OPTA          string  `json:"opta"`
	ISSI          string  `json:"issi"`
	Number        string  `json:"number"`
}

// Alarm is one alert. UCRAnswered maps a status id to the set of
// account-contexts that answered with that status (keys are UCR ids).
type Alarm struct {
	ID               int64                     `json:"id"`
	ForeignID        string                    `json:"foreign_id"`
	Title            string                    `json:"title"`
	Text             string                    `json:"text"`
	Date             int64                     `json:"date"`
	Address          string                    `json:"address"`
	Latitude         float64                   `json:"lat"`
	Longitude        float64                   `json:"lng"`
	Groups           []int64                   `json:"group"`
	Priority         bool                      `json:"priority"`
	Closed           bool                      `json:"closed"`
	New              bool                      `json:"new"`
	UCRSelfAddressed bool                      `json:"ucr_self_addressed"`
	UCRAnswered      map[string]map[string]any `json:"ucr_answered"`
	CrossUnitMeta    CrossUnitMeta             `json:"cross_unit_meta"`
}

// CrossUnitMeta resolves group ids that belong to a different cluster than
// the one being polled.
type CrossUnitMeta struct {
	Groups   map[string]CrossUnitGroup   `json:"groups"`
	Clusters map[string]CrossUnitCluster `json:"clusters"`
}

// CrossUnitGroup is a foreign responding group and the cluster it lives in.
type CrossUnitGroup struct {
	Name      string `json:"name"`
	ClusterID int64  `json:"cluster_id"`
}

// CrossUnitCluster names a foreign cluster.
type CrossUnitCluster struct {
	Name string `json:"name"`
}

// News is one announcement. Same shape as Alarm minus the answer tracking.
type News struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Text             string  `json:"text"`
	Date             int64   `json:"date"`
	Address          string  `json:"address"`
	Latitude         float64 `json:"lat"`
	Longitude        float64 `json:"lng"`
	Groups           []int64 `json:"group"`
	New              bool    `json:"new"`
	UCRSelfAddressed bool    `json:"ucr_self_addressed"`
}

// Event is one calendar entry. Start and End are epoch seconds.
type Event struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Start   int64  `json:"start"`
	End     int64  `json:"end"`
	Address string `json:"address"`
	Text    string `json:"text"`
}

// UCR is one user-cluster relation entry.
type UCR struct {
	Name        string `json:"name"`
	ClusterID   int64  `json:"cluster_id"`
	UsergroupID int64  `json:"usergroup_id"`
}

// itoa renders an entity id the way the wire format keys its item maps.
func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// DecodeSnapshot parses one raw pull document into a typed Snapshot.
func DecodeSnapshot(raw []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
