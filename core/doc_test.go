/* Copyright 2026 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package core

import (
	"encoding/json"
	"fmt"
)

func ExampleInput() {
	shout := func(args ...interface{}) (interface{}, error) {
		return args[0].(string) + "!", nil
	}

	d := Input(func(input Spec) interface{} {
		return Map(input, func(item Spec) interface{} {
			return Call(shout, item)
		})
	})

	v, err := d.Run([]interface{}{"tacos", "queso"})
	if err != nil {
		panic(err)
	}
	js, _ := json.Marshal(v)
	fmt.Println(string(js))

	// Output:
	// ["tacos!","queso!"]
}

func ExampleBind() {
	d := Input(func(input Spec) interface{} {
		return Bind(input, func(x Spec) interface{} {
			return map[string]interface{}{
				"once":  x,
				"again": x,
			}
		})
	})

	v, err := d.Run("chips")
	if err != nil {
		panic(err)
	}
	js, _ := json.Marshal(v)
	fmt.Println(string(js))

	// Output:
	// {"again":"chips","once":"chips"}
}

func ExampleCases() {
	d := Input(func(input Spec) interface{} {
		return Conditional(
			Cases(input, map[interface{}]interface{}{
				"breakfast": "migas",
				"lunch":     "tacos",
			}),
			Cases(input, map[interface{}]interface{}{
				"breakfast": "migas",
				"lunch":     "tacos",
			}),
			"queso")
	})

	for _, meal := range []interface{}{"lunch", "snack"} {
		v, err := d.Run(meal)
		if err != nil {
			panic(err)
		}
		fmt.Println(v)
	}

	// Output:
	// tacos
	// queso
}

func ExampleDerivation_MayDefer() {
	sync := Input(func(input Spec) interface{} {
		return input
	})
	async := Input(func(input Spec) interface{} {
		return Resolve(input)
	})
	fmt.Println(sync.MayDefer(), async.MayDefer())

	// Output:
	// false true
}
