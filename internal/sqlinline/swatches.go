package sqlinline

const QSwatchListAll = `--sql a2224040-5723-4c25-af8e-3de6daff9eab
select manufacturer, color_name, product_code, hex,
       lab_l, lab_a, lab_b,
       finish, finish_profile, reflectivity, metallic_flake, variant
from swatches
order by manufacturer asc, color_name asc, finish asc;
`

const QSwatchUpsert = `--sql 4207ae4d-0dd5-433d-a358-f98e047620f4
insert into swatches (
    manufacturer, color_name, product_code, hex,
    lab_l, lab_a, lab_b,
    finish, finish_profile, reflectivity, metallic_flake, variant
) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
on conflict (manufacturer, color_name, finish) do update set
    product_code = excluded.product_code,
    hex = excluded.hex,
    lab_l = excluded.lab_l,
    lab_a = excluded.lab_a,
    lab_b = excluded.lab_b,
    finish_profile = excluded.finish_profile,
    reflectivity = excluded.reflectivity,
    metallic_flake = excluded.metallic_flake,
    variant = excluded.variant,
    updated_at = now();
`
