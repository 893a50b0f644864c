package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity 加购数量必须为正整数
var ErrInvalidQuantity = errors.New("cart quantity must be at least 1")

// Product 加购时的商品快照
type Product struct {
	ID         uint
	Name       string
	Price      decimal.Decimal
	Image      string
	CategoryID uint
}

// Line 购物车行
type Line struct {
	Product  Product
	Quantity int
}

// Subtotal 行小计（不做舍入）
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart 购物车聚合，按商品 ID 去重并保留加入顺序
type Cart struct {
	lines []Line
}

// New 创建购物车，可选带入已有行
func New(lines ...Line) *Cart {
	c := &Cart{}
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if idx := c.indexOf(line.Product.ID); idx >= 0 {
			c.lines[idx].Quantity += line.Quantity
			continue
		}
		c.lines = append(c.lines, line)
	}
	return c
}

// AddItem 加购，已存在的商品累加数量
func (c *Cart) AddItem(product Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if idx := c.indexOf(product.ID); idx >= 0 {
		c.lines[idx].Quantity += quantity
		return nil
	}
	c.lines = append(c.lines, Line{Product: product, Quantity: quantity})
	return nil
}

// UpdateQuantity 直接设置数量，<=0 时移除该行
func (c *Cart) UpdateQuantity(productID uint, quantity int) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	if quantity <= 0 {
		c.removeAt(idx)
		return
	}
	c.lines[idx].Quantity = quantity
}

// RemoveItem 移除商品，不存在时忽略
func (c *Cart) RemoveItem(productID uint) {
	if idx := c.indexOf(productID); idx >= 0 {
		c.removeAt(idx)
	}
}

// Total 购物车合计，展示时再舍入
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ItemCount 商品件数
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.lines = nil
}

// IsEmpty 是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines 返回行快照
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line 查询单行
func (c *Cart) Line(productID uint) (Line, bool) {
	if idx := c.indexOf(productID); idx >= 0 {
		return c.lines[idx], true
	}
	return Line{}, false
}

func (c *Cart) indexOf(productID uint) int {
	for i, line := range c.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}
