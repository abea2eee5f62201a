package event

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type kind int

const (
	ready kind = iota
	finish
)

func TestEmitter(t *testing.T) {
	Convey("Given an emitter", t, func() {
		var e Emitter[kind, string]
		var calls []string

		Convey("Emitting without handlers is a no-op", func() {
			So(e.Emit(ready, "x"), ShouldEqual, 0)
		})

		Convey("Handlers fire in registration order with the payload", func() {
			e.On(ready, func(p string) { calls = append(calls, "first:"+p) })
			e.On(ready, func(p string) { calls = append(calls, "second:"+p) })
			e.On(finish, func(p string) { calls = append(calls, "finish:"+p) })

			So(e.Emit(ready, "go"), ShouldEqual, 2)
			So(calls, ShouldResemble, []string{"first:go", "second:go"})
			So(e.Count(finish), ShouldEqual, 1)
		})

		Convey("Handlers added during dispatch wait for the next event", func() {
			e.On(ready, func(p string) {
				calls = append(calls, "outer")
				e.On(ready, func(string) { calls = append(calls, "inner") })
			})

			e.Emit(ready, "")
			So(calls, ShouldResemble, []string{"outer"})

			e.Emit(ready, "")
			So(calls, ShouldResemble, []string{"outer", "outer", "inner"})
		})

		Convey("Nil handlers are ignored", func() {
			e.On(ready, nil)
			So(e.Count(ready), ShouldEqual, 0)
		})
	})
}
