package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func testProduct(id uint, price string) Product {
	return Product{ID: id, Name: "p", Price: decimal.RequireFromString(price)}
}

func TestCartTotalSumsLines(t *testing.T) {
	c := New()
	if err := c.AddItem(testProduct(1, "100.00"), 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := c.AddItem(testProduct(2, "50.00"), 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if !c.Total().Equal(decimal.RequireFromString("250.00")) {
		t.Fatalf("total want 250.00, got %s", c.Total())
	}
	if c.ItemCount() != 3 {
		t.Fatalf("item count want 3, got %d", c.ItemCount())
	}
}

func TestCartAddAccumulatesQuantity(t *testing.T) {
	c := New()
	_ = c.AddItem(testProduct(1, "9.99"), 1)
	_ = c.AddItem(testProduct(1, "9.99"), 2)
	lines := c.Lines()
	if len(lines) != 1 || lines[0].Quantity != 3 {
		t.Fatalf("expected one line with quantity 3, got %+v", lines)
	}
}

func TestCartAddRejectsNonPositiveQuantity(t *testing.T) {
	c := New()
	if err := c.AddItem(testProduct(1, "1.00"), 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("cart should stay empty")
	}
}

func TestCartAddThenRemoveRestoresTotal(t *testing.T) {
	c := New()
	_ = c.AddItem(testProduct(1, "19.99"), 3)
	before := c.Total()

	_ = c.AddItem(testProduct(2, "0.10"), 7)
	c.RemoveItem(2)

	if !c.Total().Equal(before) {
		t.Fatalf("total want %s, got %s", before, c.Total())
	}
}

func TestCartUpdateQuantity(t *testing.T) {
	c := New()
	_ = c.AddItem(testProduct(1, "5.00"), 4)

	c.UpdateQuantity(1, 2)
	line, ok := c.Line(1)
	if !ok || line.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %+v ok=%v", line, ok)
	}

	c.UpdateQuantity(1, 0)
	if _, ok := c.Line(1); ok {
		t.Fatalf("line should be removed at quantity 0")
	}

	_ = c.AddItem(testProduct(3, "5.00"), 1)
	c.UpdateQuantity(3, -1)
	if !c.IsEmpty() {
		t.Fatalf("negative quantity should remove the line")
	}
}

func TestCartRemoveMissingIsNoop(t *testing.T) {
	c := New()
	_ = c.AddItem(testProduct(1, "5.00"), 1)
	c.RemoveItem(99)
	if len(c.Lines()) != 1 {
		t.Fatalf("remove of absent product should not change cart")
	}
}

func TestCartTotalDoesNotRoundIntermediate(t *testing.T) {
	c := New()
	_ = c.AddItem(Product{ID: 1, Price: decimal.RequireFromString("0.333")}, 3)
	if !c.Total().Equal(decimal.RequireFromString("0.999")) {
		t.Fatalf("total want 0.999, got %s", c.Total())
	}
	c.Clear()
	if !c.IsEmpty() || !c.Total().IsZero() {
		t.Fatalf("clear should empty cart")
	}
}
