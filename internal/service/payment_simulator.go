package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/elitebuy/internal/config"
	"github.com/elitebuy/internal/constants"
)

// Randomizer 模拟支付结果的随机源
type Randomizer interface {
	Float64() float64
}

// Delayer 模拟支付处理耗时，ctx 取消时提前返回
type Delayer interface {
	Delay(ctx context.Context, d time.Duration) error
}

type mathRandomizer struct{}

func (mathRandomizer) Float64() float64 {
	return rand.Float64()
}

// FixedRandomizer 固定返回值，用于强制模拟结果
type FixedRandomizer float64

// Float64 返回固定值
func (f FixedRandomizer) Float64() float64 {
	return float64(f)
}

type timerDelayer struct{}

func (timerDelayer) Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoDelay 跳过等待
type NoDelay struct{}

// Delay 立即返回
func (NoDelay) Delay(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// SimulationProfile 单个支付方式的模拟参数
type SimulationProfile struct {
	Delay             time.Duration
	SuccessRate       float64
	TransactionPrefix string
}

// PaymentSimulator 支付模拟器
type PaymentSimulator struct {
	random   Randomizer
	delayer  Delayer
	now      func() time.Time
	profiles map[string]SimulationProfile
}

// SimulatorOption 模拟器可选项
type SimulatorOption func(*PaymentSimulator)

// WithRandomizer 替换随机源
func WithRandomizer(random Randomizer) SimulatorOption {
	return func(s *PaymentSimulator) {
		if random != nil {
			s.random = random
		}
	}
}

// WithDelayer 替换等待实现
func WithDelayer(delayer Delayer) SimulatorOption {
	return func(s *PaymentSimulator) {
		if delayer != nil {
			s.delayer = delayer
		}
	}
}

// WithClock 替换时钟
func WithClock(now func() time.Time) SimulatorOption {
	return func(s *PaymentSimulator) {
		if now != nil {
			s.now = now
		}
	}
}

// NewPaymentSimulator 创建支付模拟器
func NewPaymentSimulator(cfg config.PaymentSimulationConfig, opts ...SimulatorOption) *PaymentSimulator {
	s := &PaymentSimulator{
		random:  mathRandomizer{},
		delayer: timerDelayer{},
		now:     time.Now,
		profiles: map[string]SimulationProfile{
			constants.PaymentMethodMobileMoney: buildProfile(cfg.MobileMoney, 2000, 0.8, constants.TransactionPrefixMobileMoney),
			constants.PaymentMethodCard:        buildProfile(cfg.Card, 3000, 0.85, constants.TransactionPrefixCard),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func buildProfile(cfg config.SimulatedChannelConfig, defaultDelayMS int, defaultRate float64, prefix string) SimulationProfile {
	delayMS := cfg.DelayMS
	if delayMS < 0 {
		delayMS = defaultDelayMS
	}
	rate := cfg.SuccessRate
	if rate <= 0 || rate > 1 {
		rate = defaultRate
	}
	return SimulationProfile{
		Delay:             time.Duration(delayMS) * time.Millisecond,
		SuccessRate:       rate,
		TransactionPrefix: prefix,
	}
}

// Profile 获取支付方式的模拟参数，货到付款没有模拟过程
func (s *PaymentSimulator) Profile(method string) (SimulationProfile, bool) {
	profile, ok := s.profiles[method]
	return profile, ok
}

// Wait 按支付方式等待处理耗时
func (s *PaymentSimulator) Wait(ctx context.Context, method string) error {
	profile, ok := s.Profile(method)
	if !ok {
		return ErrPaymentMethodInvalid
	}
	return s.delayer.Delay(ctx, profile.Delay)
}

// Draw 抽取模拟结果，成功时返回交易号
func (s *PaymentSimulator) Draw(method string) (bool, string, error) {
	profile, ok := s.Profile(method)
	if !ok {
		return false, "", ErrPaymentMethodInvalid
	}
	if s.random.Float64() >= profile.SuccessRate {
		return false, "", nil
	}
	return true, fmt.Sprintf("%s%d", profile.TransactionPrefix, s.now().UnixMilli()), nil
}

// Now 当前时间
func (s *PaymentSimulator) Now() time.Time {
	return s.now()
}
