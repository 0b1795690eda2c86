package project

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CostCalculator computes the cost of project nodes.
//
// A node fed by sale lines costs its billed quantity times the cost price of
// the first linked line. Any other node costs its own effort or quantity at
// its own cost price plus the cost of its children.
type CostCalculator struct {
	// LineCostPrice returns the cost price of a sale line
	LineCostPrice func(lineID uuid.UUID) (decimal.Decimal, bool)
}

// NewCostCalculator creates a calculator reading line cost prices from the given map
func NewCostCalculator(lineCosts map[uuid.UUID]decimal.Decimal) *CostCalculator {
	return &CostCalculator{
		LineCostPrice: func(lineID uuid.UUID) (decimal.Decimal, bool) {
			c, ok := lineCosts[lineID]
			return c, ok
		},
	}
}

// Cost returns the cost of the node and its subtree
func (c *CostCalculator) Cost(tree *Tree, id uuid.UUID) decimal.Decimal {
	costs := make(map[uuid.UUID]decimal.Decimal)
	return c.cost(tree, id, costs)
}

// Breakdown returns the cost of every node of the tree
func (c *CostCalculator) Breakdown(tree *Tree) map[uuid.UUID]decimal.Decimal {
	costs := make(map[uuid.UUID]decimal.Decimal)
	if root := tree.Root(); root != nil {
		c.cost(tree, root.ID, costs)
	}
	return costs
}

func (c *CostCalculator) cost(tree *Tree, id uuid.UUID, costs map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	node, ok := tree.Node(id)
	if !ok {
		return decimal.Zero
	}

	// children are always visited so Breakdown covers the whole tree
	children := decimal.Zero
	for _, child := range tree.Children(id) {
		children = children.Add(c.cost(tree, child.ID, costs))
	}

	var total decimal.Decimal
	if price, linked := c.firstLineCost(node); linked {
		total = node.BilledQuantity().Mul(price)
	} else {
		total = node.BilledQuantity().Mul(node.CostPrice).Add(children)
	}
	total = total.Round(4)
	costs[id] = total
	return total
}

func (c *CostCalculator) firstLineCost(node *Work) (decimal.Decimal, bool) {
	if len(node.SaleLineIDs) == 0 || c.LineCostPrice == nil {
		return decimal.Zero, false
	}
	price, ok := c.LineCostPrice(node.SaleLineIDs[0])
	if !ok {
		return decimal.Zero, false
	}
	return price, true
}
