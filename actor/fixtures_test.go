/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package actor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/tochemey/actorhost/future"
	"github.com/tochemey/actorhost/state"
)

// countingProvider wraps the memory provider and counts every call
type countingProvider struct {
	*state.Memory
	mu        sync.Mutex
	loads     int
	contains  int
	applies   int
	applyErr  error
	loadErr   error
	lastApply []state.Operation
}

func newCountingProvider() *countingProvider {
	return &countingProvider{Memory: state.NewMemory()}
}

func (p *countingProvider) Load(ctx context.Context, actorType, actorID, stateName string) ([]byte, bool, error) {
	p.mu.Lock()
	p.loads++
	err := p.loadErr
	p.mu.Unlock()
	if err != nil {
		return nil, false, err
	}
	return p.Memory.Load(ctx, actorType, actorID, stateName)
}

func (p *countingProvider) Contains(ctx context.Context, actorType, actorID, stateName string) (bool, error) {
	p.mu.Lock()
	p.contains++
	p.mu.Unlock()
	return p.Memory.Contains(ctx, actorType, actorID, stateName)
}

func (p *countingProvider) Apply(ctx context.Context, actorType, actorID string, operations []state.Operation) error {
	p.mu.Lock()
	p.applies++
	p.lastApply = operations
	err := p.applyErr
	p.mu.Unlock()
	if err != nil {
		return err
	}
	return p.Memory.Apply(ctx, actorType, actorID, operations)
}

func (p *countingProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loads + p.contains + p.applies
}

func (p *countingProvider) seed(actorType, actorID, name string, value []byte) {
	_ = p.Memory.Apply(context.Background(), actorType, actorID, []state.Operation{state.NewUpsert(name, value)})
}

var errBoom = errors.New("boom")

// account is the test actor
type account struct {
	actorContext *Context

	mu            sync.Mutex
	hooks         []string
	failPre       bool
	failPost      bool
	failActivate  bool
	armOnActivate string
	reminders     []string
	lastState     *deposit
}

type deposit struct {
	Amount int64 `json:"amount"`
}

func (a *account) record(hook string) {
	a.mu.Lock()
	a.hooks = append(a.hooks, hook)
	a.mu.Unlock()
}

func (a *account) recorded() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.hooks...)
}

func (a *account) OnActivate(ctx context.Context) error {
	a.record("activate")
	if a.failActivate {
		return errBoom
	}
	if a.armOnActivate != "" {
		params, err := NewTimerParams("OnTick", nil, time.Second, time.Second)
		if err != nil {
			return err
		}
		if _, err := a.actorContext.RegisterTimer(ctx, a.armOnActivate, params); err != nil {
			return err
		}
	}
	return a.actorContext.StateManager().Set(ctx, "balance", int64(0))
}

func (a *account) OnDeactivate(context.Context) error {
	a.record("deactivate")
	return nil
}

func (a *account) OnPreInvoke(_ context.Context, invocation *InvocationContext) error {
	a.record(fmt.Sprintf("pre:%s:%s", invocation.CallType(), invocation.Name()))
	if a.failPre {
		return errBoom
	}
	return nil
}

func (a *account) OnPostInvoke(_ context.Context, invocation *InvocationContext) error {
	a.record(fmt.Sprintf("post:%s:%s", invocation.CallType(), invocation.Name()))
	if a.failPost {
		return errors.New("post failure")
	}
	return nil
}

func (a *account) Deposit(ctx context.Context, in *deposit) (int64, error) {
	a.record("deposit")
	balance, err := GetState[int64](ctx, a.actorContext.StateManager(), "balance")
	if err != nil {
		return 0, err
	}
	balance += in.Amount
	return balance, a.actorContext.StateManager().Set(ctx, "balance", balance)
}

func (a *account) Balance(ctx context.Context) (int64, error) {
	a.record("balance")
	return GetState[int64](ctx, a.actorContext.StateManager(), "balance")
}

func (a *account) Reset(ctx context.Context) error {
	a.record("reset")
	return a.actorContext.StateManager().Remove(ctx, "balance")
}

func (a *account) Fail(ctx context.Context) error {
	a.record("fail")
	if err := a.actorContext.StateManager().Set(ctx, "balance", int64(1_000_000)); err != nil {
		return err
	}
	return errBoom
}

func (a *account) Explode(context.Context) error {
	panic("kaboom")
}

func (a *account) Nothing(context.Context) (*deposit, error) {
	return nil, nil
}

func (a *account) Later(_ context.Context, in deposit) (future.Future[int64], error) {
	return future.New(func() (int64, error) {
		time.Sleep(10 * time.Millisecond)
		return in.Amount * 2, nil
	}), nil
}

func (a *account) OnTick(ctx context.Context, in *deposit) error {
	a.record("tick")
	a.mu.Lock()
	a.lastState = in
	a.mu.Unlock()
	return nil
}

func (a *account) Receive(_ context.Context, name string, state deposit, _, _ time.Duration) error {
	a.record("reminder")
	a.mu.Lock()
	a.reminders = append(a.reminders, fmt.Sprintf("%s:%d", name, state.Amount))
	a.mu.Unlock()
	return nil
}

func accountMethods() *MethodTable {
	table, err := NewMethodTable(
		Method1("Deposit", (*account).Deposit),
		Method0("Balance", (*account).Balance),
		Action0("Reset", (*account).Reset),
		Action0("Fail", (*account).Fail),
		Action0("Explode", (*account).Explode),
		Method0("Nothing", (*account).Nothing),
		Method1("Later", (*account).Later),
		Action1("OnTick", (*account).OnTick),
	)
	if err != nil {
		panic(err)
	}
	return table
}

// accountType builds the descriptor; instances are collected in the returned map
func accountType(remindable bool, configure func(*account)) (*Type, *sync.Map) {
	instances := new(sync.Map)
	factory := func(actorContext *Context) (Actor, error) {
		instance := &account{actorContext: actorContext}
		if configure != nil {
			configure(instance)
		}
		instances.Store(actorContext.ID(), instance)
		return instance, nil
	}

	var opts []TypeOption
	if remindable {
		opts = append(opts, WithReminderHandler(NewReminderHandler((*account).Receive)))
	}

	typ, err := NewType("Account", factory, accountMethods(), opts...)
	if err != nil {
		panic(err)
	}
	return typ, instances
}

func instanceOf(instances *sync.Map, id ID) *account {
	value, ok := instances.Load(id)
	if !ok {
		return nil
	}
	return value.(*account)
}

// recordingScheduler records scheduler calls
type recordingScheduler struct {
	mu        sync.Mutex
	timers    map[string]*TimerParams
	reminders map[string]*ReminderParams
}

func newRecordingScheduler() *recordingScheduler {
	return &recordingScheduler{
		timers:    make(map[string]*TimerParams),
		reminders: make(map[string]*ReminderParams),
	}
}

func (s *recordingScheduler) ScheduleTimer(_ context.Context, _ string, _ ID, name string, params *TimerParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[name] = params
	return nil
}

func (s *recordingScheduler) CancelTimer(_ context.Context, _ string, _ ID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, name)
	return nil
}

func (s *recordingScheduler) ScheduleReminder(_ context.Context, _ string, _ ID, name string, params *ReminderParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders[name] = params
	return nil
}

func (s *recordingScheduler) CancelReminder(_ context.Context, _ string, _ ID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reminders, name)
	return nil
}

func (s *recordingScheduler) timerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *recordingScheduler) timerNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.timers))
}

// relay forwards Call to the Ping method of the same id on another manager
type relay struct {
	NoopHooks
	id     ID
	callee *Manager
}

func (r *relay) Call(ctx context.Context) (string, error) {
	result, err := r.callee.InvokeMethod(ctx, r.id, "Ping", nil)
	if err != nil {
		return "", err
	}
	var reply string
	err = json.Unmarshal(result, &reply)
	return reply, err
}

type echo struct {
	NoopHooks
}

func (*echo) Ping(context.Context) (string, error) {
	return "pong", nil
}
