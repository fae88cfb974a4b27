// Package domain exposes typed views over one immutable Divera snapshot.
// Every read is a pure function of the snapshot; data-shape anomalies
// degrade to defaults, only the name-based status lookup that gates a
// write fails loudly.
package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/alarmbridge/alarmbridge/internal/divera"
	"github.com/alarmbridge/alarmbridge/internal/logger"
)

// StateUnknown is the placeholder reported wherever a record or field is
// missing from an otherwise valid snapshot.
const StateUnknown = "unknown"

// NotAnswered is reported when the account-context answered no alarm state.
const NotAnswered = "not answered"

// ErrStateNotFound means a status name matched no state in the cluster's
// status table. Raised only on the name lookup that precedes a write.
var ErrStateNotFound = errors.New("domain: state name not found")

// StatusWriter pushes a status change to the remote service.
// *divera.Client satisfies it.
type StatusWriter interface {
	SetStatus(ctx context.Context, statusID int64) error
}

// Accessor wraps exactly one snapshot. It is created together with the
// snapshot on every successful pull and discarded with it.
type Accessor struct {
	snap   *divera.Snapshot
	writer StatusWriter
	loc    *time.Location
	logger logger.Logger
}

// NewAccessor builds an accessor over snap. loc is the zone every epoch
// timestamp is converted into; nil defaults to UTC.
func NewAccessor(snap *divera.Snapshot, writer StatusWriter, loc *time.Location, log logger.Logger) *Accessor {
	if loc == nil {
		loc = time.UTC
	}
	return &Accessor{
		snap:   snap,
		writer: writer,
		loc:    loc,
		logger: log,
	}
}

// Snapshot returns the wrapped snapshot.
func (a *Accessor) Snapshot() *divera.Snapshot {
	return a.snap
}

func (a *Accessor) localTime(epoch int64) time.Time {
	return time.Unix(epoch, 0).In(a.loc)
}

// UserInfo bundles the identity fields of the account holder.
type UserInfo struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Fullname  string `json:"fullname"`
	Email     string `json:"email"`
}

// FullName returns the account holder's first and last name combined.
func (a *Accessor) FullName() string {
	u := a.snap.Data.User
	return u.Firstname + " " + u.Lastname
}

// Email returns the account holder's mail address.
func (a *Accessor) Email() string {
	return a.snap.Data.User.Email
}

// AccessKey returns the access key the remote reported for this user.
func (a *Accessor) AccessKey() string {
	return a.snap.Data.User.AccessKey
}

// User returns the identity bundle.
func (a *Accessor) User() UserInfo {
	u := a.snap.Data.User
	return UserInfo{
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Fullname:  a.FullName(),
		Email:     u.Email,
	}
}

// AllUCRs lists the ids of every account-context of the user, numerically
// sorted for stable output.
func (a *Accessor) AllUCRs() []string {
	ids := make([]string, 0, len(a.snap.Data.UCR))
	for id := range a.snap.Data.UCR {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		left, _ := strconv.ParseInt(ids[i], 10, 64)
		right, _ := strconv.ParseInt(ids[j], 10, 64)
		return left < right
	})
	return ids
}

// UCRCount returns how many account-contexts the user has.
func (a *Accessor) UCRCount() int {
	return len(a.snap.Data.UCR)
}

// DefaultUCR returns the user's default account-context id.
func (a *Accessor) DefaultUCR() int64 {
	return a.snap.Data.UCRDefault
}

// ActiveUCR returns the currently active account-context id.
func (a *Accessor) ActiveUCR() int64 {
	return a.snap.Data.UCRActive
}

// ClusterNameFromUCR resolves an account-context id to its cluster name.
// Unknown ids degrade to the placeholder.
func (a *Accessor) ClusterNameFromUCR(ucrID string) string {
	ucr, ok := a.snap.Data.UCR[ucrID]
	if !ok {
		a.logger.Warn("unknown account-context id",
			logger.String("ucr", ucrID))
		return StateUnknown
	}
	return ucr.Name
}

// ClusterIDFromUCR resolves an account-context id to its cluster id.
// Unknown ids degrade to zero.
func (a *Accessor) ClusterIDFromUCR(ucrID string) int64 {
	ucr, ok := a.snap.Data.UCR[ucrID]
	if !ok {
		a.logger.Warn("unknown account-context id",
			logger.String("ucr", ucrID))
		return 0
	}
	return ucr.ClusterID
}

// DefaultClusterName names the cluster of the default account-context.
func (a *Accessor) DefaultClusterName() string {
	return a.ClusterNameFromUCR(strconv.FormatInt(a.DefaultUCR(), 10))
}

// AllClusterNames lists the cluster names of every account-context.
func (a *Accessor) AllClusterNames() []string {
	return a.ClusterNamesFromUCRs(a.AllUCRs())
}

// ClusterNamesFromUCRs maps account-context ids to their cluster names.
func (a *Accessor) ClusterNamesFromUCRs(ucrIDs []string) []string {
	names := make([]string, 0, len(ucrIDs))
	for _, id := range ucrIDs {
		names = append(names, a.ClusterNameFromUCR(id))
	}
	return names
}

// UCRIDsByNames returns the ids of every account-context whose cluster name
// appears in names.
func (a *Accessor) UCRIDsByNames(names []string) []string {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var ids []string
	for _, id := range a.AllUCRs() {
		if wanted[a.ClusterNameFromUCR(id)] {
			ids = append(ids, id)
		}
	}
	return ids
}

// Tier classifies a cluster's product level.
type Tier string

const (
	TierFree    Tier = "Free"
	TierAlarm   Tier = "Alarm"
	TierPro     Tier = "Pro"
	TierUnknown Tier = "Unknown"
)

// ClusterVersion maps the cluster's numeric version onto a product tier.
// Unrecognized codes map to TierUnknown, never an error.
func (a *Accessor) ClusterVersion() Tier {
	switch a.snap.Data.Cluster.VersionID {
	case 1:
		return TierFree
	case 2:
		return TierAlarm
	case 3:
		return TierPro
	default:
		return TierUnknown
	}
}

// Usergroup ids of regular members permitted to use the bridge.
var allowedUsergroups = map[int64]bool{4: true, 8: true}

// UsergroupAllowed reports whether the default account-context belongs to a
// membership group permitted to use this integration. Unrecognized groups
// are logged and treated as unauthorized.
func (a *Accessor) UsergroupAllowed() bool {
	ucrID := strconv.FormatInt(a.DefaultUCR(), 10)
	ucr, ok := a.snap.Data.UCR[ucrID]
	if !ok {
		a.logger.Warn("default account-context missing from snapshot",
			logger.String("ucr", ucrID))
		return false
	}
	if allowedUsergroups[ucr.UsergroupID] {
		return true
	}
	a.logger.Warn("unsupported usergroup",
		logger.Int64("usergroup_id", ucr.UsergroupID))
	return false
}

// StateAttributes describes the current availability state of the user.
type StateAttributes struct {
	Timestamp time.Time `json:"timestamp"`
	ID        int64     `json:"id"`
}

// StateNameByID resolves a status id to its name. An id missing from the
// status table is an internal inconsistency and degrades to the placeholder.
func (a *Accessor) StateNameByID(statusID int64) string {
	st, ok := a.snap.Data.Cluster.Status[strconv.FormatInt(statusID, 10)]
	if !ok {
		a.logger.Warn("status id missing from status table",
			logger.Int64("status_id", statusID))
		return StateUnknown
	}
	return st.Name
}

// StateIDByName resolves a status name to its id, scanning in sorting
// order. Fails with ErrStateNotFound when no state carries the name; this
// lookup gates the write path, so it must not silently default.
func (a *Accessor) StateIDByName(name string) (int64, error) {
	for _, id := range a.snap.Data.Cluster.StatusSorting {
		if a.snap.Data.Cluster.Status[strconv.FormatInt(id, 10)].Name == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrStateNotFound, name)
}

// AllStateNames lists every state name in the cluster's sorting order.
func (a *Accessor) AllStateNames() []string {
	names := make([]string, 0, len(a.snap.Data.Cluster.StatusSorting))
	for _, id := range a.snap.Data.Cluster.StatusSorting {
		names = append(names, a.StateNameByID(id))
	}
	return names
}

// UserState names the user's current availability state.
func (a *Accessor) UserState() string {
	return a.StateNameByID(a.snap.Data.Status.StatusID)
}

// UserStateAttributes returns the current state's raw id and the moment it
// was set, converted to the configured zone.
func (a *Accessor) UserStateAttributes() StateAttributes {
	return StateAttributes{
		Timestamp: a.localTime(a.snap.Data.Status.StatusSetDate),
		ID:        a.snap.Data.Status.StatusID,
	}
}

// SetUserStateByName resolves name and pushes the status change. The
// resolution error propagates so a user-initiated change never no-ops.
func (a *Accessor) SetUserStateByName(ctx context.Context, name string) error {
	id, err := a.StateIDByName(name)
	if err != nil {
		return err
	}
	return a.SetUserStateByID(ctx, id)
}

// SetUserStateByID pushes the status change. Transport failures propagate
// unchanged; the caller triggers a refresh to observe the effect.
func (a *Accessor) SetUserStateByID(ctx context.Context, statusID int64) error {
	return a.writer.SetStatus(ctx, statusID)
}
