package bootstrap

import "github.com/sirupsen/logrus"

// event is anything the orchestrator can report as progress. Keeping the
// event types distinct (rather than passing format strings around) lets a
// future consumer other than logrus hook in without touching the
// orchestrator.
type event interface {
	logFields() logrus.Fields
	logMessage() string
}

type eventKeyringProvisioned struct{ Suite, Path string }

func (e eventKeyringProvisioned) logFields() logrus.Fields {
	return logrus.Fields{"suite": e.Suite, "path": e.Path}
}
func (e eventKeyringProvisioned) logMessage() string { return "keyring provisioned" }

type eventReleaseVerified struct{ Suite string }

func (e eventReleaseVerified) logFields() logrus.Fields { return logrus.Fields{"suite": e.Suite} }
func (e eventReleaseVerified) logMessage() string       { return "release signature verified" }

type eventPackagesIndexed struct{ Count int }

func (e eventPackagesIndexed) logFields() logrus.Fields { return logrus.Fields{"required": e.Count} }
func (e eventPackagesIndexed) logMessage() string       { return "packages index loaded" }

type eventResolved struct{ Count int }

func (e eventResolved) logFields() logrus.Fields { return logrus.Fields{"resolved": e.Count} }
func (e eventResolved) logMessage() string        { return "dependency closure resolved" }

type eventNothingToInstall struct{}

func (e eventNothingToInstall) logFields() logrus.Fields { return logrus.Fields{} }
func (e eventNothingToInstall) logMessage() string       { return "Nothing to install" }

type eventRelocated struct{ Sysroot string }

func (e eventRelocated) logFields() logrus.Fields { return logrus.Fields{"sysroot": e.Sysroot} }
func (e eventRelocated) logMessage() string       { return "symlinks relocated" }

// emit logs an event at info level using the caller's logger. It is the
// single choke point between orchestrator progress and the [+]-prefixed
// formatter installed by NewLogger.
func emit(log *logrus.Logger, e event) {
	log.WithFields(e.logFields()).Info(e.logMessage())
}
