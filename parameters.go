package olaf

// Parameters describes the size of a DKG group: how many participants hold a
// share, and how many of them must cooperate to sign. Validation of these
// bounds is the DKG's job (see simplpedpop.ContributeAll); Parameters itself
// is just the pair, carried through a DKG output and into every FROST
// session it produces signers for.
type Parameters struct {
	Participants int
	Threshold    int
}
