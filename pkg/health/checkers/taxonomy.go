package checkers

import (
	"context"
	"errors"

	"github.com/artem13815/jobmatch/pkg/taxonomy"
)

// TaxonomyChecker verifies a usable vocabulary snapshot is loaded. The
// pipeline cannot extract anything from an empty taxonomy.
type TaxonomyChecker struct {
	store *taxonomy.Store
}

func NewTaxonomyChecker(store *taxonomy.Store) *TaxonomyChecker {
	return &TaxonomyChecker{store: store}
}

func (c *TaxonomyChecker) Name() string { return "taxonomy" }

func (c *TaxonomyChecker) Check(context.Context) error {
	t := c.store.Current()
	if t == nil || t.Len() == 0 {
		return errors.New("no skill taxonomy loaded")
	}
	return nil
}
