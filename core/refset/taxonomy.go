package refset

import (
	"sort"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/tableio"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// TaxonomyIndex holds the validated solution taxonomy as an immutable forest
// with cached adjacency. Safe for concurrent reads after Load.
type TaxonomyIndex struct {
	nodes     map[int]schema.TaxonomyNode
	children  map[int][]int // parent id -> ordered child ids
	roots     []int         // Category node ids in first-seen order
	solutions []int         // Objective node ids ascending
}

// LoadTaxonomy builds the index from ordered taxonomy rows. Each row carries
// the solution id plus the four textual levels; category, subcategory and
// activity nodes are de-duplicated by text and receive synthetic ids assigned
// in first-seen order starting above the highest row id. Row order is
// contractual and identical across language editions, so synthetic ids line
// up between editions.
func LoadTaxonomy(rows []tableio.TaxonomyRow) (*TaxonomyIndex, error) {
	if len(rows) == 0 {
		return nil, contract.NewValidationError(tableio.TaxonomyTable, "no rows")
	}

	maxID := 0
	for _, row := range rows {
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	nextID := maxID + 1

	idx := &TaxonomyIndex{
		nodes:    make(map[int]schema.TaxonomyNode),
		children: make(map[int][]int),
	}

	// Text -> node id per synthesized level. Keyed by text alone: the same
	// subcategory text must always resolve to the same node, so re-appearing
	// under a different parent is an inconsistency, not a second node.
	categories := make(map[string]int)
	subcategories := make(map[string]int)
	activities := make(map[string]int)

	addNode := func(id int, level schema.Level, label string, parentID int) {
		idx.nodes[id] = schema.TaxonomyNode{ID: id, Level: level, Label: label, ParentID: parentID}
		if parentID == 0 {
			idx.roots = append(idx.roots, id)
		} else {
			idx.children[parentID] = append(idx.children[parentID], id)
		}
	}

	for i, row := range rows {
		rowNum := i + 1
		if row.Category == "" || row.Subcategory == "" || row.Activity == "" || row.Objective == "" {
			return nil, contract.NewRowValidationError(tableio.TaxonomyTable, rowNum, "all four level texts are required")
		}
		if _, dup := idx.nodes[row.ID]; dup {
			return nil, contract.NewRowValidationError(tableio.TaxonomyTable, rowNum, "duplicate id %d", row.ID)
		}

		catID, ok := categories[row.Category]
		if !ok {
			catID = nextID
			nextID++
			categories[row.Category] = catID
			addNode(catID, schema.CategoryLevel, row.Category, 0)
		}

		subID, ok := subcategories[row.Subcategory]
		if !ok {
			subID = nextID
			nextID++
			subcategories[row.Subcategory] = subID
			addNode(subID, schema.SubcategoryLevel, row.Subcategory, catID)
		} else if idx.nodes[subID].ParentID != catID {
			return nil, contract.NewRowValidationError(tableio.TaxonomyTable, rowNum,
				"subcategory %q appears under two different categories", row.Subcategory)
		}

		actID, ok := activities[row.Activity]
		if !ok {
			actID = nextID
			nextID++
			activities[row.Activity] = actID
			addNode(actID, schema.ActivityLevel, row.Activity, subID)
		} else if idx.nodes[actID].ParentID != subID {
			return nil, contract.NewRowValidationError(tableio.TaxonomyTable, rowNum,
				"activity %q appears under two different subcategories", row.Activity)
		}

		addNode(row.ID, schema.ObjectiveLevel, row.Objective, actID)
		idx.solutions = append(idx.solutions, row.ID)
	}

	sort.Ints(idx.solutions)
	return idx, nil
}

// Node returns the node with the given id.
func (t *TaxonomyIndex) Node(id int) (schema.TaxonomyNode, error) {
	node, ok := t.nodes[id]
	if !ok {
		return schema.TaxonomyNode{}, contract.NewNotFoundError("taxonomy node", id)
	}
	return node, nil
}

// ChildrenOf returns the ordered child nodes of the given node.
func (t *TaxonomyIndex) ChildrenOf(id int) ([]schema.TaxonomyNode, error) {
	if _, ok := t.nodes[id]; !ok {
		return nil, contract.NewNotFoundError("taxonomy node", id)
	}
	ids := t.children[id]
	out := make([]schema.TaxonomyNode, 0, len(ids))
	for _, cid := range ids {
		out = append(out, t.nodes[cid])
	}
	return out, nil
}

// AncestorsOf returns the chain from the node's parent up to its Category
// root, nearest first.
func (t *TaxonomyIndex) AncestorsOf(id int) ([]schema.TaxonomyNode, error) {
	node, ok := t.nodes[id]
	if !ok {
		return nil, contract.NewNotFoundError("taxonomy node", id)
	}
	var out []schema.TaxonomyNode
	for node.ParentID != 0 {
		node = t.nodes[node.ParentID]
		out = append(out, node)
	}
	return out, nil
}

// Roots returns the Category nodes in first-seen order.
func (t *TaxonomyIndex) Roots() []schema.TaxonomyNode {
	out := make([]schema.TaxonomyNode, 0, len(t.roots))
	for _, id := range t.roots {
		out = append(out, t.nodes[id])
	}
	return out
}

// Solutions returns the Objective-level node ids in ascending order.
func (t *TaxonomyIndex) Solutions() []int {
	return append([]int(nil), t.solutions...)
}

// Len returns the total node count across all levels.
func (t *TaxonomyIndex) Len() int {
	return len(t.nodes)
}
