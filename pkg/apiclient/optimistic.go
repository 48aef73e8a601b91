package apiclient

// Optimistic runs a local mutation before the backend confirms it.
// The snapshot is taken first, apply updates local state immediately,
// and when confirm fails the snapshot is restored, leaving local state
// exactly as it was before the call.
func Optimistic[S any](snapshot func() S, apply func(), confirm func() error, restore func(S)) error {
	snap := snapshot()
	apply()
	if err := confirm(); err != nil {
		restore(snap)
		return err
	}
	return nil
}
