// Package seed holds the starter catalog of the shop: twenty goods, ten
// merchants and ten customers.
package seed

import (
	_ "embed"
	"fmt"

	"github.com/safar/coronas-ledger/internal/snapshot"
	"gopkg.in/yaml.v3"
)

//go:embed fixture.yaml
var fixture []byte

func Document() (snapshot.Document, error) {
	var doc snapshot.Document
	if err := yaml.Unmarshal(fixture, &doc); err != nil {
		return snapshot.Document{}, fmt.Errorf("decode seed fixture: %w", err)
	}
	if err := snapshot.Validate(doc); err != nil {
		return snapshot.Document{}, err
	}
	return doc, nil
}
