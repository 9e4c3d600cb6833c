package jval_test

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/creachadair/jval"
)

func ExampleDecode() {
	v, err := jval.Decode(`{"name": "widget", "sizes": [3, 300, -70000, 2.5]}`)
	if err != nil {
		log.Fatalf("Decode: %v", err)
	}
	sizes, _ := v.Find("sizes")
	for _, s := range sizes.Elements() {
		n := s.Num()
		fmt.Println(n, n.MinInt(), n.MinFloat())
	}
	// Output:
	// 3 uint8 float32
	// 300 uint16 float32
	// -70000 int32 float32
	// 2.5 uint8 float32
}

func ExampleDecode_error() {
	_, err := jval.Decode("[1,\n 2,\n {3: 4}]")
	var serr *jval.SyntaxError
	if errors.As(err, &serr) {
		fmt.Println("offset:", serr.Offset)
		fmt.Println("location:", serr.Location)
	}
	fmt.Println(errors.Is(err, jval.ErrInvalidKeyType))
	// Output:
	// offset: 10
	// location: 3:2
	// true
}

func ExampleEncoder() {
	e := jval.NewEncoder(os.Stdout)
	e.BeginObject()
	e.InsertNewline()
	e.WriteKey("array")
	e.BeginArray()
	for _, b := range []bool{true, false} {
		e.InsertNewline()
		e.BeginObject()
		e.WriteKey("a")
		e.WriteBool(b)
		e.EndObject()
	}
	e.InsertNewline()
	e.EndArray()
	e.InsertNewline()
	e.EndObject()
	fmt.Println()
	// Output:
	// {
	//  "array":[
	//   {"a":true},
	//   {"a":false}
	//  ]
	// }
}

func ExampleMarshal() {
	v := jval.Object(
		jval.Field("id", jval.Int(7)),
		jval.Field("tags", jval.Array(jval.String("x"), jval.String("y"))),
		jval.Field("id", jval.Float(7.5)),
	)
	out, err := jval.Marshal(v)
	if err != nil {
		log.Fatalf("Marshal: %v", err)
	}
	fmt.Println(string(out))
	// Output:
	// {"id":7.5,"tags":["x","y"]}
}
