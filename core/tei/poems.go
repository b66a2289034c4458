package tei

// poem builds the poem reserved in f.slot from its (possibly partial)
// subtree and the metadata known at its start tag.
func (s *scanner) poem(f frame) {
	p := s.opts.PoemBuilder(f.node, f.seen.header, f.seen.author, f.seen.year)
	p.FindTitle()
	if f.seen.period != "" {
		p.SetPeriod(f.seen.period)
	}
	s.res.Poems[f.slot] = p
}
